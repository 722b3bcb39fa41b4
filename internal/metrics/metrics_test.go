package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/diag"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	require.NotNil(t, m.Counter)
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestObserveFile(t *testing.T) {
	m := New(prometheus.NewRegistry())

	warn := diag.Diagnostic{Severity: diag.Warning, Code: diag.WarnUnknownCSS}
	m.ObserveFile(ResultCompiled, 3*time.Millisecond, 2, []diag.Diagnostic{warn})
	m.ObserveFile(ResultCached, 0, 5, []diag.Diagnostic{warn})
	m.ObserveFile(ResultFailed, 0, 0, []diag.Diagnostic{{Severity: diag.Error, Code: diag.ErrComponentTag}})

	assert.Equal(t, 1.0, counterValue(t, m.files.WithLabelValues(ResultCompiled)))
	assert.Equal(t, 1.0, counterValue(t, m.files.WithLabelValues(ResultCached)))
	assert.Equal(t, 1.0, counterValue(t, m.files.WithLabelValues(ResultFailed)))
	assert.Equal(t, 2.0, counterValue(t, m.snapshots), "cache hits emit nothing")
	assert.Equal(t, uint64(1), histogramCount(t, m.duration))
	assert.Equal(t, 2.0, counterValue(t, m.diagnostics.WithLabelValues("W204", "warning")))
	assert.Equal(t, 1.0, counterValue(t, m.diagnostics.WithLabelValues("E301", "error")))
}

func TestTrack(t *testing.T) {
	m := New(prometheus.NewRegistry())
	done := m.Track()
	assert.Equal(t, 1.0, gaugeValue(t, m.inFlight))
	done()
	assert.Equal(t, 0.0, gaugeValue(t, m.inFlight))
}

func TestWatchEvent(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.WatchEvent("write")
	m.WatchEvent("write")
	m.WatchEvent("remove")
	assert.Equal(t, 2.0, counterValue(t, m.watchEvents.WithLabelValues("write")))
	assert.Equal(t, 1.0, counterValue(t, m.watchEvents.WithLabelValues("remove")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFile(ResultCompiled, time.Second, 1, nil)
		m.Track()()
		m.WatchEvent("create")
	})
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
