// Package metrics holds the Prometheus collectors for studyweek.
//
// All metrics are prefixed with "studyweek_". A nil *Metrics is valid and
// records nothing, so services and handlers can run without a registry.
//
// Metrics:
//   - studyweek_use_case_total{use_case,outcome} - use case executions
//   - studyweek_use_case_duration_seconds{use_case} - use case latency
//   - studyweek_reflection_degraded_total{source} - optional sources replaced by empty data
//   - studyweek_reflection_cache_total{result} - last-known summary lookups (hit/miss)
//   - studyweek_entries_logged_total{source} - focus sessions and manual entries written
//   - studyweek_http_requests_total{method,route,status} - HTTP requests served
//   - studyweek_http_request_duration_seconds{method,route} - HTTP latency
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UseCaseTotal    *prometheus.CounterVec
	UseCaseDuration *prometheus.HistogramVec

	DegradedTotal *prometheus.CounterVec
	CacheTotal    *prometheus.CounterVec

	EntriesLoggedTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Passing prometheus.DefaultRegisterer twice panics on duplicate registration;
// tests should hand in a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UseCaseTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studyweek_use_case_total",
				Help: "Total number of service use case executions",
			},
			[]string{"use_case", "outcome"}, // outcome: "success" or "error"
		),
		UseCaseDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studyweek_use_case_duration_seconds",
				Help:    "Duration of service use cases in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"use_case"},
		),
		DegradedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studyweek_reflection_degraded_total",
				Help: "Optional reflection sources that failed and were replaced by empty data",
			},
			[]string{"source"},
		),
		CacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studyweek_reflection_cache_total",
				Help: "Last-known weekly summary lookups",
			},
			[]string{"result"},
		),
		EntriesLoggedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studyweek_entries_logged_total",
				Help: "Focus sessions and manual progress entries written",
			},
			[]string{"source"}, // "timer" or "manual"
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studyweek_http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studyweek_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"method", "route"},
		),
	}
}

// RecordUseCase records one use case execution.
func (m *Metrics) RecordUseCase(name string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.UseCaseTotal.WithLabelValues(name, outcome).Inc()
	m.UseCaseDuration.WithLabelValues(name).Observe(d.Seconds())
}

// RecordDegraded records an optional reflection source falling back to empty.
func (m *Metrics) RecordDegraded(source string) {
	if m == nil {
		return
	}
	m.DegradedTotal.WithLabelValues(source).Inc()
}

// RecordCacheLookup records a last-known summary lookup.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheTotal.WithLabelValues(result).Inc()
}

// RecordEntryLogged records a stored focus session or manual entry.
func (m *Metrics) RecordEntryLogged(source string) {
	if m == nil {
		return
	}
	m.EntriesLoggedTotal.WithLabelValues(source).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
