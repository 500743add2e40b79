// Package observability provides Prometheus metrics for the sandbox
// service. Metrics are registered once at init and exposed via /metrics.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Execution outcome labels for ExecutionsTotal.
const (
	StatusOK           = "ok"
	StatusUserError    = "user_error"
	StatusTimeout      = "timeout"
	StatusSpawnFailure = "spawn_failure"
)

var (
	// ExecutionsTotal counts completed executions by outcome.
	ExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandbox_executions_total",
			Help: "Completed sandbox executions",
		},
		[]string{"status"},
	)

	// ExecutionDuration records end-to-end execution handling time,
	// staging and promotion included. Buckets cover the 60s timeout
	// ceiling.
	ExecutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sandbox_execution_duration_seconds",
			Help:    "Execution duration",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	// ArtifactsPromoted counts plots moved into durable storage.
	ArtifactsPromoted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sandbox_artifacts_promoted_total",
			Help: "Artifacts promoted to durable storage",
		},
	)

	// InputFetchWarnings counts input files that failed staging.
	InputFetchWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sandbox_input_fetch_warnings_total",
			Help: "Input files that could not be staged",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ExecutionsTotal,
		ExecutionDuration,
		ArtifactsPromoted,
		InputFetchWarnings,
	)
}
