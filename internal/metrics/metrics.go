// Package metrics instruments ProofEngine operations with Prometheus
// counters and histograms. A nil *Recorder disables recording entirely, so
// no core package requires Prometheus to function.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records proof-engine activity broken down by algorithm token and
// operation.
type Recorder struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewRecorder builds a Recorder and registers its collectors against reg.
// Pass prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to publish on the process default.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jwp",
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Count of ProofEngine operations by algorithm and operation.",
		}, []string{"alg", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jwp",
			Subsystem: "engine",
			Name:      "failures_total",
			Help:      "Count of ProofEngine operation failures by algorithm, operation, and kind.",
		}, []string{"alg", "operation", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jwp",
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Latency of ProofEngine operations by algorithm and operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"alg", "operation"}),
	}
	reg.MustRegister(r.operations, r.failures, r.latency)
	return r
}

// Observe records one completed operation. kind is the jwperr.Kind string
// on failure, or "" on success.
func (r *Recorder) Observe(alg, operation string, start time.Time, kind string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(alg, operation).Inc()
	r.latency.WithLabelValues(alg, operation).Observe(time.Since(start).Seconds())
	if kind != "" {
		r.failures.WithLabelValues(alg, operation, kind).Inc()
	}
}
