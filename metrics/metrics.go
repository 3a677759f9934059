// Package metrics exposes series, record and backtest state as
// Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry
}

// NewRegistry creates a registry with Go runtime and process collectors
// registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Registry{Registry: reg}
}

// RunnerMetrics counts backtest runs and the trades they operate.
type RunnerMetrics struct {
	runs       prometheus.Counter
	duration   prometheus.Histogram
	operations prometheus.Counter
}

// NewRunnerMetrics registers the backtest metrics on the registry.
func NewRunnerMetrics(reg *Registry) *RunnerMetrics {
	m := &RunnerMetrics{
		runs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "strake_backtest_runs_total",
				Help: "Total number of completed backtest runs",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strake_backtest_duration_seconds",
				Help:    "Backtest run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		operations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "strake_backtest_operations_total",
				Help: "Total number of trades operated by backtest runs",
			},
		),
	}

	reg.MustRegister(m.runs)
	reg.MustRegister(m.duration)
	reg.MustRegister(m.operations)

	return m
}

// RecordRun records a completed run.
func (m *RunnerMetrics) RecordRun(elapsed time.Duration, operations int) {
	m.runs.Inc()
	m.duration.Observe(elapsed.Seconds())
	m.operations.Add(float64(operations))
}
