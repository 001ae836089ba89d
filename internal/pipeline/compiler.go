package pipeline

import (
	"fmt"

	"kakaku/internal/config"
	"kakaku/internal/spec"
	"kakaku/internal/transform"
)

// Compile loads a pipeline artifact and builds the runnable stage list.
func Compile(path string) (*Pipeline, error) {
	cfg, err := config.LoadPipelineSpec(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg)
}

// Build instantiates stages from an already-parsed artifact. The stage set
// is closed: an artifact naming anything else is rejected.
func Build(cfg spec.File) (*Pipeline, error) {
	p := New()
	for _, st := range cfg.Stages {
		switch st.Kind {
		case transform.KindEpochTime:
			p.Add(transform.NewEpochTime(st.Field))
		case transform.KindCategorical:
			p.Add(transform.NewCategorical(st.Field))
		default:
			return nil, fmt.Errorf("unsupported stage kind %q for field %q", st.Kind, st.Field)
		}
	}
	return p, nil
}
