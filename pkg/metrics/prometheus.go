// Package metrics provides Prometheus metrics for the catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the catalog service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Catalog state
	catalogEntries         prometheus.Gauge
	catalogDistinctEntries prometheus.Gauge
	catalogScores          prometheus.Gauge
	catalogLoadDuration    prometheus.Histogram
	catalogLoadErrors      prometheus.Counter
	catalogLoadedUnix      prometheus.Gauge

	// Query metrics
	sampleSize       prometheus.Histogram
	queriesByKind    *prometheus.CounterVec
	scoresReturned   prometheus.Counter
	queryErrorsTotal *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "catalog",
		subsystem:        "service",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every series
	auto := promauto.With(m.registry)

	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}

	m.catalogEntries = gauge("catalog_entries", "Number of entries in the loaded catalog, duplicates included")
	m.catalogDistinctEntries = gauge("catalog_distinct_entries", "Number of value-distinct entries available for sampling")
	m.catalogScores = gauge("catalog_scores", "Number of score records in the loaded catalog")
	m.catalogLoadedUnix = gauge("catalog_loaded_unix", "Unix timestamp of the last successful catalog load")
	m.catalogLoadErrors = counter("catalog_load_errors_total", "Total number of failed catalog loads")
	m.catalogLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalog_load_duration_milliseconds",
		Help:        "Time spent reading and decoding the dataset",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.sampleSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sample_size",
		Help:        "Number of entries returned per random sample",
		Buckets:     []float64{0, 1, 2, 3, 4, 5, 10, 25},
		ConstLabels: m.constLabels,
	})
	m.scoresReturned = counter("scores_returned_total", "Total number of score records returned by the aggregate")
	m.queriesByKind = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "queries_total",
			Help:        "Catalog queries served by kind",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)
	m.queryErrorsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "query_errors_total",
			Help:        "Catalog query failures by kind",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// Catalog Metrics Functions.

// UpdateCatalogSize publishes the sizes of the loaded catalog.
func UpdateCatalogSize(entries, distinct, scores int) {
	globalManager.catalogEntries.Set(float64(entries))
	globalManager.catalogDistinctEntries.Set(float64(distinct))
	globalManager.catalogScores.Set(float64(scores))
}

// RecordCatalogLoad records a successful load and its duration.
func RecordCatalogLoad(durationMs float64, unix int64) {
	globalManager.catalogLoadDuration.Observe(durationMs)
	globalManager.catalogLoadedUnix.Set(float64(unix))
}

// RecordCatalogLoadError increments the failed load counter.
func RecordCatalogLoadError() {
	globalManager.catalogLoadErrors.Inc()
}

// Query Metrics Functions.

// RecordSample records one random-entries query and the number of entries it returned.
func RecordSample(size int) {
	globalManager.queriesByKind.WithLabelValues("random_entries").Inc()
	globalManager.sampleSize.Observe(float64(size))
}

// RecordScores records one scores query and the number of records it returned.
func RecordScores(returned int) {
	globalManager.queriesByKind.WithLabelValues("scores").Inc()
	globalManager.scoresReturned.Add(float64(returned))
}

// RecordQueryError increments the failure counter for a query kind.
func RecordQueryError(kind string) {
	globalManager.queryErrorsTotal.WithLabelValues(kind).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
