package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kakaku/internal/spec"
)

const SupportedSchema = "v1"

// LoadPipelineSpec parses a pipeline artifact YAML, validates its
// schema_version, and returns the parsed spec.
func LoadPipelineSpec(path string) (spec.File, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("pipeline schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	if len(cfg.Stages) == 0 {
		return cfg, fmt.Errorf("pipeline artifact %s declares no stages", path)
	}
	for i, st := range cfg.Stages {
		if st.Kind == "" || st.Field == "" {
			return cfg, fmt.Errorf("pipeline stage %d: kind and field are required", i)
		}
	}
	return cfg, nil
}
