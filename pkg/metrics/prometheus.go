// Package metrics provides Prometheus metrics for the rumormill service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Ingestion metrics
	rumorsIngested   prometheus.Counter
	rumorsDuplicate  prometheus.Counter
	feedFetches      *prometheus.CounterVec
	feedFetchLatency *prometheus.HistogramVec

	// Matching metrics
	mentionsRecorded prometheus.Counter
	matchLatency     prometheus.Histogram
	matchErrors      prometheus.Counter

	// Registry metrics
	playersCreated  prometheus.Counter
	mergesCompleted prometheus.Counter
	mergeConflicts  prometheus.Counter
	newsTransferred prometheus.Counter
	totalPlayers    prometheus.Gauge
	trackedAliases  prometheus.Gauge

	// Sync cycle metrics
	syncCycles        prometheus.Counter
	syncCycleDuration prometheus.Histogram
	lastSyncUnix      prometheus.Gauge

	// Queue and worker metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	workerCount      prometheus.Gauge
	workerLatency    prometheus.Histogram
	workerErrors     prometheus.Counter

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

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rumormill",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all Prometheus collectors on the configured registry.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat metric declarations
	auto := promauto.With(m.registry)

	m.rumorsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rumors_ingested_total",
		Help:      "Total number of rumor items ingested across all feed sources",
	})

	m.rumorsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rumors_duplicate_total",
		Help:      "Total number of rumor items dropped as duplicates (by link)",
	})

	m.feedFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_fetches_total",
			Help:      "Total number of feed fetch attempts by source and outcome",
		},
		[]string{"source", "status"},
	)

	m.feedFetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_fetch_latency_milliseconds",
			Help:      "Feed fetch and parse latency in milliseconds by source",
			Buckets:   m.histogramBuckets,
		},
		[]string{"source"},
	)

	m.mentionsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mentions_recorded_total",
		Help:      "Total number of player mentions recorded by the matcher",
	})

	m.matchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_latency_milliseconds",
		Help:      "Histogram of per-rumor matching latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.matchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_errors_total",
		Help:      "Total number of errors while recording mentions",
	})

	m.playersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_created_total",
		Help:      "Total number of player records created",
	})

	m.mergesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merges_completed_total",
		Help:      "Total number of successful player merges",
	})

	m.mergeConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_conflicts_total",
		Help:      "Total number of merges rejected due to alias conflicts",
	})

	m.newsTransferred = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "news_transferred_total",
		Help:      "Total number of mention associations moved by merges",
	})

	m.totalPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_players",
		Help:      "Total number of live player records in the registry",
	})

	m.trackedAliases = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_aliases",
		Help:      "Total number of normalized names tracked by the alias index",
	})

	m.syncCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_cycles_total",
		Help:      "Total number of completed rumor sync cycles",
	})

	m.syncCycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_cycle_duration_milliseconds",
		Help:      "Duration of full rumor sync cycles in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastSyncUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_sync_unix_seconds",
		Help:      "Unix timestamp of the last completed sync cycle",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of rumors waiting in the match queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the match queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Match queue utilization (size / capacity)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueues_total",
		Help:      "Total number of rumors enqueued for matching",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeues_total",
		Help:      "Total number of rumors consumed by match workers",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of running match workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Per-rumor worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker processing errors",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers operating on the global manager.

// RecordRumorIngested increments the ingested rumor counter.
func RecordRumorIngested() {
	globalManager.rumorsIngested.Inc()
}

// RecordRumorDuplicate increments the duplicate rumor counter.
func RecordRumorDuplicate() {
	globalManager.rumorsDuplicate.Inc()
}

// RecordFeedFetch records a feed fetch attempt outcome ("ok" or "error").
func RecordFeedFetch(source, status string) {
	globalManager.feedFetches.WithLabelValues(source, status).Inc()
}

// RecordFeedFetchLatency records feed fetch latency for a source.
func RecordFeedFetchLatency(source string, latencyMs float64) {
	globalManager.feedFetchLatency.WithLabelValues(source).Observe(latencyMs)
}

// RecordMentionRecorded increments the mention counter.
func RecordMentionRecorded() {
	globalManager.mentionsRecorded.Inc()
}

// RecordMatchLatency records per-rumor match latency.
func RecordMatchLatency(latencyMs float64) {
	globalManager.matchLatency.Observe(latencyMs)
}

// RecordMatchError increments the match error counter.
func RecordMatchError() {
	globalManager.matchErrors.Inc()
}

// RecordPlayerCreated increments the player creation counter.
func RecordPlayerCreated() {
	globalManager.playersCreated.Inc()
}

// RecordMergeCompleted increments the merge counter and adds the moved
// associations to the transfer counter.
func RecordMergeCompleted(newsTransferred int) {
	globalManager.mergesCompleted.Inc()
	globalManager.newsTransferred.Add(float64(newsTransferred))
}

// RecordMergeConflict increments the merge conflict counter.
func RecordMergeConflict() {
	globalManager.mergeConflicts.Inc()
}

// UpdateTotalPlayers sets the live player gauge.
func UpdateTotalPlayers(count int) {
	globalManager.totalPlayers.Set(float64(count))
}

// UpdateTrackedAliases sets the alias index gauge.
func UpdateTrackedAliases(count int) {
	globalManager.trackedAliases.Set(float64(count))
}

// RecordSyncCycle records a completed sync cycle and its duration.
func RecordSyncCycle(durationMs float64) {
	globalManager.syncCycles.Inc()
	globalManager.syncCycleDuration.Observe(durationMs)
}

// UpdateLastSyncUnix sets the last-sync timestamp gauge.
func UpdateLastSyncUnix(unixSeconds int64) {
	globalManager.lastSyncUnix.Set(float64(unixSeconds))
}

// UpdateQueueSize sets the queue size gauge.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization gauge.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// UpdateWorkerCount sets the worker gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records per-rumor worker latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
