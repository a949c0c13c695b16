// Package metrics provides Prometheus metrics for the grading service.
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

	// Batch pipeline metrics
	batchesProcessed prometheus.Counter
	batchDuration    prometheus.Histogram
	rowsProcessed    prometheus.Counter
	rowsRejected     prometheus.Counter
	headerMismatches prometheus.Counter
	recordsByStatus  *prometheus.CounterVec

	// Policy metrics
	policyUpdates       prometheus.Counter
	policyWindowMinutes prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "notafinal",
		subsystem:        "grading",
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

	m.batchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_total",
		Help:      "Total number of CSV batches processed",
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of batch processing duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_valid_total",
		Help:      "Total number of rows that passed validation and were scored",
	})

	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Total number of rows rejected by validation",
	})

	m.headerMismatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "header_mismatch_total",
		Help:      "Total number of batches with a malformed header row",
	})

	m.recordsByStatus = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_by_status_total",
		Help:      "Scored records broken down by penalty status",
	}, []string{"status"})

	m.policyUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "policy_updates_total",
		Help:      "Total number of successful policy updates",
	})

	m.policyWindowMinutes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "policy_window_minutes",
		Help:      "Current penalty window in minutes",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// GetRegistry returns the custom registry used by the global manager, for
// exposition via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers on the global manager.

// RecordBatch records one completed batch run.
func RecordBatch(durationMs float64, validRows, rejectedRows int) {
	globalManager.batchesProcessed.Inc()
	globalManager.batchDuration.Observe(durationMs)
	globalManager.rowsProcessed.Add(float64(validRows))
	globalManager.rowsRejected.Add(float64(rejectedRows))
}

// RecordHeaderMismatch counts a batch whose header row was malformed.
func RecordHeaderMismatch() {
	globalManager.headerMismatches.Inc()
}

// RecordRecordStatus counts one scored record by its penalty status.
func RecordRecordStatus(status string) {
	globalManager.recordsByStatus.WithLabelValues(status).Inc()
}

// RecordPolicyUpdate counts a successful policy update and tracks the
// resulting window.
func RecordPolicyUpdate(windowMinutes int) {
	globalManager.policyUpdates.Inc()
	globalManager.policyWindowMinutes.Set(float64(windowMinutes))
}

// UpdatePolicyWindow tracks the active penalty window without counting an
// update (startup, snapshot reload).
func UpdatePolicyWindow(windowMinutes int) {
	globalManager.policyWindowMinutes.Set(float64(windowMinutes))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
