// Package pipeline composes transform stages in the order the artifact
// declares and applies them as one unit: a stage failure aborts the whole
// run, partial transformation is never returned.
package pipeline

import (
	"errors"
	"fmt"

	"kakaku/internal/record"
	"kakaku/internal/transform"
)

type Pipeline struct {
	stages []transform.Stage
}

func New() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(s transform.Stage) { p.stages = append(p.stages, s) }

func (p *Pipeline) Len() int { return len(p.stages) }

// Fit runs the offline half of each stage in declared order, feeding every
// stage the batch as transformed by its predecessors. Serving never calls
// this; it exists so the artifact can be reproduced from historical records.
func (p *Pipeline) Fit(batch []record.Record) error {
	for _, s := range p.stages {
		if err := s.Fit(batch); err != nil {
			return fmt.Errorf("fit %s(%s): %w", s.Name(), s.Field(), err)
		}
		for i, rec := range batch {
			out, err := s.Transform(rec.Clone())
			if err != nil {
				return fmt.Errorf("fit %s(%s): record %d: %w", s.Name(), s.Field(), i, err)
			}
			batch[i] = out
		}
	}
	return nil
}

// Transform maps an augmented record to a feature vector. The input record
// is not mutated; stages run on a private copy, in declared order.
func (p *Pipeline) Transform(rec record.Record) (record.Record, error) {
	if len(p.stages) == 0 {
		return nil, errors.New("pipeline: no stages configured")
	}
	out := rec.Clone()
	for _, s := range p.stages {
		var err error
		out, err = s.Transform(out)
		if err != nil {
			return nil, fmt.Errorf("stage %s(%s): %w", s.Name(), s.Field(), err)
		}
	}
	return out, nil
}

// OutputSchema derives the schema the pipeline produces for a given input
// schema, stage by stage, without running any transform.
func (p *Pipeline) OutputSchema(in record.Schema) (record.Schema, error) {
	out := make(record.Schema, len(in))
	for name, kind := range in {
		out[name] = kind
	}
	for _, s := range p.stages {
		kind, ok := out[s.Field()]
		if !ok {
			return nil, fmt.Errorf("stage %s targets unknown field %q", s.Name(), s.Field())
		}
		next, err := transform.OutputKind(s, kind)
		if err != nil {
			return nil, err
		}
		out[s.Field()] = next
	}
	return out, nil
}
