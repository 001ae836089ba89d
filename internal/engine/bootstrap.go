package engine

import (
	"fmt"

	"kakaku/internal/config"
	"kakaku/internal/logging"
	"kakaku/internal/model"
	"kakaku/internal/pipeline"
	"kakaku/internal/record"
	"kakaku/internal/telemetry"
	"kakaku/internal/transport"
)

// Bootstrap loads both artifacts, checks the training/serving schema
// contract, and binds the listener. Any failure here is fatal to startup:
// the process must not begin serving with a broken artifact pair.
func Bootstrap(cfg config.Server) (*Engine, error) {
	// 1. artifacts
	pipe, err := pipeline.Compile(cfg.PipelineArtifact)
	if err != nil {
		return nil, fmt.Errorf("pipeline artifact: %w", err)
	}
	mdl, err := model.Load(cfg.ModelArtifact)
	if err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}

	// 2. the pipeline's output schema must equal what the model was trained
	// against; a mismatch must never become a silent wrong answer.
	produced, err := pipe.OutputSchema(record.InputSchema())
	if err != nil {
		return nil, fmt.Errorf("pipeline schema: %w", err)
	}
	if !produced.Equal(mdl.Schema()) {
		return nil, fmt.Errorf("artifact mismatch: %s", mdl.Schema().Diff(produced))
	}

	// 3. transport server
	srv, err := transport.StartServer(cfg.ListenAddr, transport.NewHandler(pipe, mdl))
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	// 4. metrics
	telemetry.Expose(cfg.MetricsPort)

	logging.L().Info("ready",
		"addr", srv.Addr(),
		"stages", pipe.Len(),
		"metrics_port", cfg.MetricsPort)
	return &Engine{transport: srv}, nil
}
