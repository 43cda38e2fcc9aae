// Package metrics provides Prometheus metrics for the billabot service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics - reports and reminder runs
	reportsGenerated prometheus.Counter
	reminderRuns     prometheus.Counter
	offendersFound   prometheus.Gauge

	// Delivery metrics - one outcome per reminder attempt
	deliveries      *prometheus.CounterVec
	dispatchLatency prometheus.Histogram

	// Upstream metrics - the directory and time tracking fetches
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec

	// HTTP metrics - the command surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "billabot",
		subsystem:        "reminder",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_generated_total",
		Help:      "Number of hour reports rendered",
	})

	m.reminderRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Number of weekly reminder runs",
	})

	m.offendersFound = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "offenders_found",
		Help:      "Offenders identified by the most recent run",
	})

	m.deliveries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deliveries_total",
		Help:      "Reminder delivery attempts by outcome",
	}, []string{"status"})

	m.dispatchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_latency_milliseconds",
		Help:      "Time to fan one reminder batch out",
		Buckets:   m.histogramBuckets,
	})

	m.upstreamLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_latency_milliseconds",
		Help:      "Fetch latency per upstream service",
		Buckets:   m.histogramBuckets,
	}, []string{"upstream"})

	m.upstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_errors_total",
		Help:      "Fetch failures per upstream service and kind",
	}, []string{"upstream", "kind"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method, and status",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordReportGenerated increments the rendered-reports counter.
func RecordReportGenerated() {
	globalManager.reportsGenerated.Inc()
}

// RecordReminderRun increments the reminder-run counter.
func RecordReminderRun() {
	globalManager.reminderRuns.Inc()
}

// UpdateOffendersFound records the offender count of the latest run.
func UpdateOffendersFound(count int) {
	globalManager.offendersFound.Set(float64(count))
}

// RecordDelivery counts one delivery attempt by outcome.
func RecordDelivery(status string) {
	globalManager.deliveries.WithLabelValues(status).Inc()
}

// RecordDispatchLatency records how long a reminder batch took, in milliseconds.
func RecordDispatchLatency(latencyMs float64) {
	globalManager.dispatchLatency.Observe(latencyMs)
}

// RecordUpstreamLatency records fetch latency for an upstream, in milliseconds.
func RecordUpstreamLatency(upstream string, latencyMs float64) {
	globalManager.upstreamLatency.WithLabelValues(upstream).Observe(latencyMs)
}

// RecordUpstreamError counts a fetch failure for an upstream.
func RecordUpstreamError(upstream, kind string) {
	globalManager.upstreamErrors.WithLabelValues(upstream, kind).Inc()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
