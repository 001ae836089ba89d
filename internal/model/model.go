// Package model loads the trained scoring artifact and exposes it behind an
// opaque Predict. The serving path never looks inside: it hands over a
// feature vector with the exact schema the training run declared and gets a
// scalar back.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kakaku/internal/record"
)

const supportedSchema = "v1"

// FeatureType values accepted in the artifact's feature list.
const (
	FeatureNumber      = "number"
	FeatureCategorical = "categorical"
)

type Feature struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Model scores one feature vector. Implementations are immutable after load
// and safe for concurrent use.
type Model interface {
	// Schema is the feature schema the model was trained against.
	Schema() record.Schema
	// Predict returns the scalar estimate for one feature vector. Any error
	// means the artifact and the vector disagree, which is a serving-side
	// fault, not a client one.
	Predict(fv record.Record) (float64, error)
}

type categoryTable struct {
	// Default scores categories the training data never saw.
	Default float64            `yaml:"default"`
	Weights map[string]float64 `yaml:"weights"`
}

type artifact struct {
	SchemaVersion string    `yaml:"schema_version"`
	Kind          string    `yaml:"kind"`
	Features      []Feature `yaml:"features"`

	Intercept    float64                  `yaml:"intercept"`
	Coefficients map[string]float64       `yaml:"coefficients"`
	Categories   map[string]categoryTable `yaml:"categories"`
}

// Load reads a model artifact YAML and builds the scoring function. The
// model kind set is closed per artifact schema version.
func Load(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a artifact
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	if a.SchemaVersion == "" {
		a.SchemaVersion = supportedSchema
	}
	if a.SchemaVersion != supportedSchema {
		return nil, fmt.Errorf("model schema_version %q not supported (want %q)", a.SchemaVersion, supportedSchema)
	}
	switch a.Kind {
	case "linear":
		return newLinear(a)
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
}
