package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordUseCase("reflect", true, 10*time.Millisecond)
	m.RecordUseCase("reflect", false, time.Millisecond)
	m.RecordUseCase("reflect", true, time.Millisecond)
	m.RecordDegraded("sessions")
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.RecordCacheLookup(false)
	m.RecordEntryLogged("manual")
	m.RecordHTTPRequest("POST", "/functions/v1/weekly_reflect", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UseCaseTotal.WithLabelValues("reflect", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCaseTotal.WithLabelValues("reflect", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedTotal.WithLabelValues("sessions")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntriesLoggedTotal.WithLabelValues("manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/functions/v1/weekly_reflect", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordUseCase("x", true, time.Second)
		m.RecordDegraded("tasks")
		m.RecordCacheLookup(true)
		m.RecordEntryLogged("timer")
		m.RecordHTTPRequest("GET", "/health", 200, time.Second)
	})
}

func TestNew_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RecordDegraded("tasks")

	families, err := reg.Gather()
	assert.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "studyweek_reflection_degraded_total")
}
