package transform

import (
	"fmt"

	"kakaku/internal/record"
)

// KindCategorical is the artifact name of the categorical-tagging stage.
const KindCategorical = "categorical"

// Categorical re-tags a free-text field as a categorical symbol without
// altering its value. No vocabulary is fitted or consulted: categories the
// training data never saw pass through unchanged, and scoring them is the
// model's problem.
type Categorical struct {
	field string
}

func NewCategorical(field string) *Categorical { return &Categorical{field: field} }

func (s *Categorical) Name() string  { return KindCategorical }
func (s *Categorical) Field() string { return s.field }

// Fit is a no-op: tagging needs no vocabulary.
func (s *Categorical) Fit(batch []record.Record) error { return nil }

func (s *Categorical) Transform(rec record.Record) (record.Record, error) {
	v, err := rec.Get(s.field)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case record.KindString:
		rec.Set(s.field, record.Categorical(v.Str))
	case record.KindCategorical:
		// already tagged
	default:
		return nil, fmt.Errorf("field %q: %w: cannot tag %s as categorical", s.field, record.ErrMalformedFeature, v.Kind)
	}
	return rec, nil
}
