// Package monitoring handles Prometheus metrics collection
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	plansGeneratedTotal prometheus.Counter
	mealsSwappedTotal   prometheus.Counter
	sentinelSlotsTotal  prometheus.Counter
	rulesResolvedTotal  prometheus.Histogram
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		plansGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "meal_plans_generated_total",
				Help: "Total number of meal plans generated",
			},
		),
		mealsSwappedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "meals_swapped_total",
				Help: "Total number of meal swaps performed",
			},
		),
		sentinelSlotsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sentinel_slots_total",
				Help: "Total number of plan slots left without a suitable meal",
			},
		),
		rulesResolvedTotal: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resolved_rules_per_plan",
				Help:    "Number of resolved diet rules per generated plan",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
	}
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordPlanGenerated records a generated plan and its resolved rule count
func (m *MetricsCollector) RecordPlanGenerated(resolvedRules, sentinelSlots int) {
	m.plansGeneratedTotal.Inc()
	m.rulesResolvedTotal.Observe(float64(resolvedRules))
	m.sentinelSlotsTotal.Add(float64(sentinelSlots))
}

// RecordMealSwapped records a successful meal swap
func (m *MetricsCollector) RecordMealSwapped() {
	m.mealsSwappedTotal.Inc()
}
