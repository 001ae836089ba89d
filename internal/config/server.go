// Package config centralizes loader entrypoints: the server configuration
// and the pipeline artifact spec.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Server is the process configuration. Artifact paths are required; the
// rest has working defaults.
type Server struct {
	ListenAddr  string `koanf:"listen_addr"`
	MetricsPort int    `koanf:"metrics_port"`

	PipelineArtifact string `koanf:"pipeline_artifact"`
	ModelArtifact    string `koanf:"model_artifact"`
}

// LoadServer merges YAML (if present) with env-vars (prefix `KAKAKU__`);
// env values win over the file.
func LoadServer(path string) (Server, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Server{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Server{}, fmt.Errorf("server schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	// KAKAKU__LISTEN_ADDR becomes the root-level key "listen_addr"
	_ = k.Load(env.Provider("KAKAKU__", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "KAKAKU__"))
	}), nil)

	var cfg Server
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if cfg.PipelineArtifact == "" {
		return cfg, errors.New("pipeline_artifact path is required")
	}
	if cfg.ModelArtifact == "" {
		return cfg, errors.New("model_artifact path is required")
	}
	return cfg, nil
}

func applyDefaults(c *Server) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8000"
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
}
