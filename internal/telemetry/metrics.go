// Package telemetry exposes Prometheus metrics for the serving path on a
// side port, separate from the prediction listener.
package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Predictions counts finished prediction requests by outcome
	// ("ok", "bad_request", "internal_error").
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kakaku",
		Name:      "predictions_total",
		Help:      "Prediction requests by outcome.",
	}, []string{"outcome"})

	// PredictionSeconds tracks end-to-end handler latency.
	PredictionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kakaku",
		Name:      "prediction_duration_seconds",
		Help:      "Prediction handler latency.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObservePrediction records one finished request.
func ObservePrediction(outcome string, started time.Time) {
	Predictions.WithLabelValues(outcome).Inc()
	PredictionSeconds.Observe(time.Since(started).Seconds())
}

func Expose(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
	}()
}
