// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from a bootstrap run.
//
// It exposes a narrow interface (Backend) focused on counters and timing
// data, and a global, pluggable backend that defaults to a no-op
// implementation, so metrics are always safe to call even when no real
// backend is configured. Concrete metric systems live in subpackages
// (prompush, datadog).
package metrics

import "time"

// Metric names emitted by this package.
const (
	StepTotal           = "schemaboot_step_total"
	StepDurationSeconds = "schemaboot_step_duration_seconds"
	TablesTotal         = "schemaboot_tables_total"
)

// Table outcomes for RecordTables.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so we can plug in Prometheus, Datadog, etc.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one bootstrap step
// ("plan", "connect", "apply").
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordTables counts tables by outcome (OutcomeCreated, OutcomeExisting).
func RecordTables(job, outcome string, n int) {
	if n <= 0 {
		return
	}
	backend.IncCounter(TablesTotal, float64(n), Labels{
		"job":     job,
		"outcome": outcome,
	})
}
