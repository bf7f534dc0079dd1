package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ChainReadLatency tracks the latency of one full sample collection
	ChainReadLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thermaltrap",
			Subsystem: "chain",
			Name:      "read_latency_seconds",
			Help:      "Time spent collecting one sample from the chain reader",
		},
		[]string{"reader"},
	)

	// ChainReadErrors tracks chain read failures by kind
	ChainReadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thermaltrap",
			Subsystem: "chain",
			Name:      "read_errors_total",
			Help:      "Number of chain read failures",
		},
		[]string{"reader", "error_type"},
	)

	// Evaluations counts trap decisions by outcome
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thermaltrap",
			Subsystem: "trap",
			Name:      "evaluations_total",
			Help:      "Number of trap evaluations by outcome",
		},
		[]string{"outcome"},
	)

	// StaleSamples counts window entries rejected by the freshness check
	StaleSamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thermaltrap",
			Subsystem: "trap",
			Name:      "stale_samples_total",
			Help:      "Number of window samples older than the configured max age",
		},
		[]string{"position"},
	)

	// HeatSignals counts dispatch attempts by result
	HeatSignals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thermaltrap",
			Subsystem: "dispatcher",
			Name:      "heat_signals_total",
			Help:      "Number of heat signal dispatch attempts by result",
		},
		[]string{"result"},
	)
)

// MustRegister registers all metrics with the default Prometheus registry
func MustRegister() {
	prometheus.MustRegister(
		ChainReadLatency,
		ChainReadErrors,
		Evaluations,
		StaleSamples,
		HeatSignals,
	)
}
