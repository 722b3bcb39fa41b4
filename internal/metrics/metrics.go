// Package metrics exposes Prometheus collectors for compile activity.
//
// A nil *Metrics is valid and records nothing, so callers that run without
// a metrics endpoint pass nil instead of checking at every call site.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/snapc/internal/diag"
)

const namespace = "snapc"

// File outcomes recorded by ObserveFile.
const (
	ResultCompiled = "compiled"
	ResultCached   = "cached"
	ResultFailed   = "failed"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	files       *prometheus.CounterVec
	snapshots   prometheus.Counter
	diagnostics *prometheus.CounterVec
	duration    prometheus.Histogram
	watchEvents *prometheus.CounterVec
	inFlight    prometheus.Gauge
}

// New registers the collectors with reg. Use prometheus.NewRegistry in
// tests; registering twice with the same registry panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Source files processed, by result.",
		}, []string{"result"}),

		snapshots: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_emitted_total",
			Help:      "Snapshot definitions emitted by fresh compiles.",
		}),

		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics reported, by code and severity.",
		}, []string{"code", "severity"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time to parse, transform and print one file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),

		watchEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "File system events handled in watch mode, by operation.",
		}, []string{"op"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compiles_in_flight",
			Help:      "Files currently being compiled.",
		}),
	}
}

// ObserveFile records one processed file. Cache hits do not observe a
// duration or count snapshots, but their cached diagnostics still count.
func (m *Metrics) ObserveFile(result string, elapsed time.Duration, snapshots int, diags []diag.Diagnostic) {
	if m == nil {
		return
	}
	m.files.WithLabelValues(result).Inc()
	if result == ResultCompiled {
		m.duration.Observe(elapsed.Seconds())
		m.snapshots.Add(float64(snapshots))
	}
	for _, d := range diags {
		m.diagnostics.WithLabelValues(d.Code, d.Severity.String()).Inc()
	}
}

// Track marks a compile as started and returns a func that marks it done.
func (m *Metrics) Track() func() {
	if m == nil {
		return func() {}
	}
	m.inFlight.Inc()
	return m.inFlight.Dec
}

// WatchEvent records a file system event handled in watch mode.
func (m *Metrics) WatchEvent(op string) {
	if m == nil {
		return
	}
	m.watchEvents.WithLabelValues(op).Inc()
}
