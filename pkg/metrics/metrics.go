// Package metrics provides Prometheus metrics for the creator credit
// scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics - the heart of the service
	scoresGenerated     prometheus.Counter
	monthsAlreadyScored prometheus.Counter
	emptyMonths         prometheus.Counter
	generationErrors    prometheus.Counter
	generationDuration  prometheus.Histogram
	lastGenerationUnix  prometheus.Gauge

	// Store gauges
	totalCreators prometheus.Gauge
	totalScores   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "creatorscore",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.scoresGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_generated_total",
		Help:      "Total number of monthly credit scores generated and persisted",
	})
	m.monthsAlreadyScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "months_already_scored_total",
		Help:      "Months skipped because a credit score already existed",
	})
	m.emptyMonths = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_months_total",
		Help:      "Months with bucketed metrics that produced no platform scores",
	})
	m.generationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generation_errors_total",
		Help:      "Failed score generation attempts",
	})
	m.generationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generation_duration_ms",
		Help:      "Duration of a full generation pass for one creator in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.lastGenerationUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_generation_timestamp_seconds",
		Help:      "Unix time of the most recent generation pass",
	})

	m.totalCreators = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "creators_total",
		Help:      "Number of creators tracked in the store",
	})
	m.totalScores = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "credit_scores_total",
		Help:      "Number of credit scores persisted in the store",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers acting on the global manager.

func RecordScoreGenerated() {
	globalManager.scoresGenerated.Inc()
}

func RecordMonthAlreadyScored() {
	globalManager.monthsAlreadyScored.Inc()
}

func RecordEmptyMonth() {
	globalManager.emptyMonths.Inc()
}

func RecordGenerationError() {
	globalManager.generationErrors.Inc()
}

func RecordGenerationDuration(durationMs float64) {
	globalManager.generationDuration.Observe(durationMs)
	globalManager.lastGenerationUnix.SetToCurrentTime()
}

func UpdateTotalCreators(count int) {
	globalManager.totalCreators.Set(float64(count))
}

func UpdateTotalScores(count int) {
	globalManager.totalScores.Set(float64(count))
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry exposes the custom registry for the /healthz metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
