package model

import (
	"fmt"
	"math"

	"kakaku/internal/record"
)

// linear is an intercept + weighted-sum scorer: numeric features contribute
// coefficient*value, categorical features contribute a per-category weight
// with a default for unseen categories.
type linear struct {
	features  []Feature
	schema    record.Schema
	intercept float64
	coef      map[string]float64
	cats      map[string]categoryTable
}

func newLinear(a artifact) (*linear, error) {
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("linear model declares no features")
	}
	m := &linear{
		features:  a.Features,
		schema:    make(record.Schema, len(a.Features)),
		intercept: a.Intercept,
		coef:      a.Coefficients,
		cats:      a.Categories,
	}
	for _, f := range a.Features {
		switch f.Type {
		case FeatureNumber:
			if _, ok := a.Coefficients[f.Name]; !ok {
				return nil, fmt.Errorf("linear model: numeric feature %q has no coefficient", f.Name)
			}
			m.schema[f.Name] = record.KindNumber
		case FeatureCategorical:
			if _, ok := a.Categories[f.Name]; !ok {
				return nil, fmt.Errorf("linear model: categorical feature %q has no weight table", f.Name)
			}
			m.schema[f.Name] = record.KindCategorical
		default:
			return nil, fmt.Errorf("linear model: feature %q has unknown type %q", f.Name, f.Type)
		}
	}
	return m, nil
}

func (m *linear) Schema() record.Schema { return m.schema }

func (m *linear) Predict(fv record.Record) (float64, error) {
	sum := m.intercept
	for _, f := range m.features {
		v, err := fv.Get(f.Name)
		if err != nil {
			return 0, fmt.Errorf("model: %w", err)
		}
		switch f.Type {
		case FeatureNumber:
			if v.Kind != record.KindNumber {
				return 0, fmt.Errorf("model: feature %q is %s, trained as number", f.Name, v.Kind)
			}
			sum += m.coef[f.Name] * v.Num
		case FeatureCategorical:
			if v.Kind != record.KindCategorical {
				return 0, fmt.Errorf("model: feature %q is %s, trained as categorical", f.Name, v.Kind)
			}
			t := m.cats[f.Name]
			w, ok := t.Weights[v.Str]
			if !ok {
				w = t.Default
			}
			sum += w
		}
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("model: prediction is not finite")
	}
	return sum, nil
}
