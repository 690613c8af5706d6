package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the thaidash service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline Metrics - one observation per cleaning run
	pipelineRuns        prometheus.Counter
	pipelineDuration    prometheus.Histogram
	rowsIngested        prometheus.Counter
	duplicatesRemoved   prometheus.Counter
	nullCells           *prometheus.CounterVec
	featuresSkipped     *prometheus.CounterVec
	sourceLoads         *prometheus.CounterVec
	datasetRows         prometheus.Gauge
	datasetParticipants prometheus.Gauge

	// Cache Metrics
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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

// Configure replaces the global manager with one built from opts on a fresh
// registry. It is meant to run once at startup, before any metric is
// recorded or the registry is served.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts[:len(opts):len(opts)], WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "thaidash",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounter(m.counterOpts(
		"pipeline_runs_total", "Total number of completed cleaning pipeline runs"))
	m.pipelineDuration = auto.NewHistogram(m.histogramOpts(
		"pipeline_duration_milliseconds", "Cleaning pipeline duration in milliseconds", m.histogramBuckets))
	m.rowsIngested = auto.NewCounter(m.counterOpts(
		"rows_ingested_total", "Total number of raw registration rows fed into the pipeline"))
	m.duplicatesRemoved = auto.NewCounter(m.counterOpts(
		"duplicates_removed_total", "Total number of rows dropped by de-duplication"))
	m.nullCells = auto.NewCounterVec(m.counterOpts(
		"null_cells_total", "Cells that could not be parsed and were set to null"), []string{"column"})
	m.featuresSkipped = auto.NewCounterVec(m.counterOpts(
		"features_skipped_total", "Derived features skipped because a required column was missing"), []string{"feature"})
	m.sourceLoads = auto.NewCounterVec(m.counterOpts(
		"source_loads_total", "Datasets loaded by origin (file, upload, synthetic)"), []string{"source"})
	m.datasetRows = auto.NewGauge(m.gaugeOpts(
		"dataset_rows", "Rows in the currently served cleaned dataset"))
	m.datasetParticipants = auto.NewGauge(m.gaugeOpts(
		"dataset_participants", "Unique participants in the currently served dataset"))

	m.cacheHits = auto.NewCounter(m.counterOpts(
		"cache_hits_total", "Analysis results served from the result cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts(
		"cache_misses_total", "Analysis requests that required a pipeline run"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts(
		"cache_entries", "Current number of cached analysis results"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Pipeline Metrics Functions.

// RecordPipelineRun counts a completed run and observes its duration.
func RecordPipelineRun(durationMs float64) {
	globalManager.pipelineRuns.Inc()
	globalManager.pipelineDuration.Observe(durationMs)
}

// RecordRowsIngested adds n raw rows to the ingestion counter.
func RecordRowsIngested(n int) {
	globalManager.rowsIngested.Add(float64(n))
}

// RecordDuplicatesRemoved adds n rows dropped by de-duplication.
func RecordDuplicatesRemoved(n int) {
	globalManager.duplicatesRemoved.Add(float64(n))
}

// RecordNullCells adds n unparsable cells for column.
func RecordNullCells(column string, n int) {
	globalManager.nullCells.WithLabelValues(column).Add(float64(n))
}

// RecordFeatureSkipped increments the skipped counter for a derived feature.
func RecordFeatureSkipped(feature string) {
	globalManager.featuresSkipped.WithLabelValues(feature).Inc()
}

// RecordSourceLoad increments the load counter for a dataset origin.
func RecordSourceLoad(source string) {
	globalManager.sourceLoads.WithLabelValues(source).Inc()
}

// UpdateDatasetRows sets the row count of the served dataset.
func UpdateDatasetRows(count int) {
	globalManager.datasetRows.Set(float64(count))
}

// UpdateDatasetParticipants sets the participant count of the served dataset.
func UpdateDatasetParticipants(count int) {
	globalManager.datasetParticipants.Set(float64(count))
}

// Cache Metrics Functions.

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheEntries sets the number of cached results.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
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

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
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
