// Package metrics provides Prometheus metrics for the kaizolist leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Board recompute
	recomputes          prometheus.Counter
	recomputeErrors     prometheus.Counter
	recomputeDuration   prometheus.Histogram
	sourceLoadDuration  prometheus.Histogram
	boardPlayers        prometheus.Gauge
	boardEntries        prometheus.Gauge
	boardParticipations prometheus.Gauge
	skippedReferences   prometheus.Gauge
	duplicateCredits    prometheus.Gauge

	// Queries
	simulations            prometheus.Counter
	repositoryRecordsTotal prometheus.Gauge
	repositoryQueryLatency prometheus.Histogram
	notificationsPublished prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "kaizolist",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	msBuckets := []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

	m.recomputes = m.counter("recomputes_total", "Total number of successful board recomputes")
	m.recomputeErrors = m.counter("recompute_errors_total", "Total number of failed board recomputes")
	m.recomputeDuration = m.histogram("recompute_duration_milliseconds", "Time spent aggregating and ranking in milliseconds", msBuckets)
	m.sourceLoadDuration = m.histogram("source_load_duration_milliseconds", "Time spent reading source collections in milliseconds", msBuckets)
	m.boardPlayers = m.gauge("players", "Number of ranked players on the current board")
	m.boardEntries = m.gauge("entries", "Number of registered entries on the current board")
	m.boardParticipations = m.gauge("participations", "Number of credited clears on the current board")
	m.skippedReferences = m.gauge("skipped_references", "Victor references to unknown entries in the last recompute")
	m.duplicateCredits = m.gauge("duplicate_credits", "Credits dropped as duplicates in the last recompute")

	m.simulations = m.counter("simulations_total", "Total number of simulated clears")
	m.repositoryRecordsTotal = m.gauge("repository_records_total", "Number of standings held by the ranking store")
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds", "Ranking store query latency in milliseconds", msBuckets)
	m.notificationsPublished = m.counter("notifications_published_total", "Total number of board notifications published")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request duration in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Total number of errors by component",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})
}

// BoardStats are the gauges refreshed after every recompute.
type BoardStats struct {
	Players        int
	Entries        int
	Participations int
	Skipped        int
	Duplicates     int
}

// RecordRecompute records a successful recompute and refreshes the board gauges.
func RecordRecompute(durationMs float64, s BoardStats) {
	globalManager.recomputes.Inc()
	globalManager.recomputeDuration.Observe(durationMs)
	globalManager.boardPlayers.Set(float64(s.Players))
	globalManager.boardEntries.Set(float64(s.Entries))
	globalManager.boardParticipations.Set(float64(s.Participations))
	globalManager.skippedReferences.Set(float64(s.Skipped))
	globalManager.duplicateCredits.Set(float64(s.Duplicates))
}

// RecordRecomputeError increments the failed recompute counter.
func RecordRecomputeError() {
	globalManager.recomputeErrors.Inc()
}

// RecordSourceLoad records how long loading the source collections took.
func RecordSourceLoad(durationMs float64) {
	globalManager.sourceLoadDuration.Observe(durationMs)
}

// RecordSimulation increments the simulation counter.
func RecordSimulation() {
	globalManager.simulations.Inc()
}

// UpdateRepositoryRecordsTotal sets the number of standings in the store.
func UpdateRepositoryRecordsTotal(count int) {
	globalManager.repositoryRecordsTotal.Set(float64(count))
}

// RecordRepositoryQueryLatency records a store query latency in milliseconds.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordNotificationPublished increments the published notification counter.
func RecordNotificationPublished() {
	globalManager.notificationsPublished.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
