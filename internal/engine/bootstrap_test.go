package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakaku/internal/config"
)

const pipelineArtifact = `schema_version: v1
stages:
  - kind: epoch_time
    field: trade_date
  - kind: categorical
    field: address
`

const modelArtifact = `schema_version: v1
kind: linear
features:
  - name: trade_date
    type: number
  - name: area
    type: number
  - name: building_year
    type: number
  - name: address
    type: categorical
intercept: 1000000
coefficients:
  trade_date: 0.001
  area: 120000
  building_year: 3500
categories:
  address:
    default: 500000
    weights:
      東京都千代田区: 2500000
`

func writeArtifacts(t *testing.T, pipeline, model string) config.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Server{
		ListenAddr:       "127.0.0.1:0",
		MetricsPort:      0,
		PipelineArtifact: filepath.Join(dir, "pipeline.yml"),
		ModelArtifact:    filepath.Join(dir, "model.yml"),
	}
	require.NoError(t, os.WriteFile(cfg.PipelineArtifact, []byte(pipeline), 0o644))
	require.NoError(t, os.WriteFile(cfg.ModelArtifact, []byte(model), 0o644))
	return cfg
}

func startEngine(t *testing.T, cfg config.Server) *Engine {
	t.Helper()
	e, err := Bootstrap(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("engine did not shut down")
		}
	})
	return e
}

func TestBootstrap_ServesPredictions(t *testing.T) {
	cfg := writeArtifacts(t, pipelineArtifact, modelArtifact)
	e := startEngine(t, cfg)

	url := fmt.Sprintf("http://%s/predict", e.Addr())
	body := `{"address": "東京都千代田区", "area": 30, "building_year": 2013}`
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Status    string  `json:"status"`
		Predicted float64 `json:"predicted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "OK", result.Status)
	assert.GreaterOrEqual(t, result.Predicted, 0.0)
}

func TestBootstrap_Healthz(t *testing.T) {
	cfg := writeArtifacts(t, pipelineArtifact, modelArtifact)
	e := startEngine(t, cfg)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", e.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBootstrap_MissingModelArtifact(t *testing.T) {
	cfg := writeArtifacts(t, pipelineArtifact, modelArtifact)
	require.NoError(t, os.Remove(cfg.ModelArtifact))

	_, err := Bootstrap(cfg)
	assert.Error(t, err, "process must not reach ready state without a model artifact")
}

func TestBootstrap_MissingPipelineArtifact(t *testing.T) {
	cfg := writeArtifacts(t, pipelineArtifact, modelArtifact)
	require.NoError(t, os.Remove(cfg.PipelineArtifact))

	_, err := Bootstrap(cfg)
	assert.Error(t, err)
}

func TestBootstrap_SchemaMismatchIsFatal(t *testing.T) {
	// artifact pair disagrees: the pipeline never tags the address, so the
	// model's categorical feature would see plain text
	mismatched := `schema_version: v1
stages:
  - kind: epoch_time
    field: trade_date
`
	cfg := writeArtifacts(t, mismatched, modelArtifact)

	_, err := Bootstrap(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact mismatch")
}
