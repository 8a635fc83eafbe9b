// Package metrics provides Prometheus metrics for the demo analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	enabled        bool
	registry       prometheus.Registerer

	// Analysis
	demosAnalyzed       prometheus.Counter
	demosFailed         *prometheus.CounterVec
	demosDuplicate      prometheus.Counter
	analysisLatency     prometheus.Histogram
	framesScanned       prometheus.Counter
	playerSource        *prometheus.CounterVec
	unclassifiedPrints  prometheus.Counter
	unresolvedTeamkills prometheus.Counter

	// Leaderboard and archive
	leaderboardUpdates      prometheus.Counter
	totalPlayers            prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram
	archiveWrites           prometheus.Counter
	archiveErrors           prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "mvdstats",
		subsystem:      "analysis",
		latencyBuckets: defaultLatencyBuckets,
		enabled:        true,
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.demosAnalyzed = m.counter("demos_analyzed_total", "Total number of demos analysed successfully")
	m.demosFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "demos_failed_total",
			Help:        "Total number of demos that could not be analysed, by reason",
			ConstLabels: m.constLabels,
		},
		[]string{"reason"},
	)
	m.demosDuplicate = m.counter("demos_duplicate_total", "Total number of uploads rejected as duplicates")
	m.analysisLatency = m.histogram("analysis_latency_milliseconds", "Histogram of demo analysis latency in milliseconds")
	m.framesScanned = m.counter("frames_scanned_total", "Total number of frames walked by analysis scans")
	m.playerSource = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "player_source_total",
			Help:        "Matches by source of player figures (ktxstats or parsing)",
			ConstLabels: m.constLabels,
		},
		[]string{"source"},
	)
	m.unclassifiedPrints = m.counter("unclassified_prints_total", "Obituary-level prints that matched no template")
	m.unresolvedTeamkills = m.counter("unresolved_teamkills_total", "Anonymous teamkills without a unique killer")

	m.leaderboardUpdates = m.counter("leaderboard_updates_total", "Total number of leaderboard updates")
	m.totalPlayers = m.gauge("total_players", "Total number of players in the leaderboard")
	m.repositoryUpdateLatency = m.histogram("repository_update_latency_milliseconds", "Leaderboard update latency in milliseconds")
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds", "Leaderboard query latency in milliseconds")
	m.archiveWrites = m.counter("archive_writes_total", "Matches written to the archive")
	m.archiveErrors = m.counter("archive_errors_total", "Failed archive reads and writes")

	m.queueSize = m.gauge("queue_size", "Current number of queued demos")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum number of queued demos")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueue = m.counter("queue_enqueue_total", "Demos enqueued")
	m.queueDequeue = m.counter("queue_dequeue_total", "Demos dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Demos rejected by a full or closed queue")

	m.workerCount = m.gauge("worker_count", "Configured number of workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Workers currently analysing a demo")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time a worker spends on one demo in milliseconds")
	m.workerErrors = m.counter("worker_errors_total", "Demos a worker failed to process")

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
			Buckets:     m.latencyBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Errors by component and type",
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)
}

func active() *Manager {
	if globalManager == nil || !globalManager.enabled {
		return nil
	}
	return globalManager
}

// RecordDemoAnalyzed increments the analysed demos counter.
func RecordDemoAnalyzed() {
	if m := active(); m != nil {
		m.demosAnalyzed.Inc()
	}
}

// RecordDemoFailed increments the failed demos counter for reason.
func RecordDemoFailed(reason string) {
	if m := active(); m != nil {
		m.demosFailed.WithLabelValues(reason).Inc()
	}
}

// RecordDemoDuplicate increments the duplicate uploads counter.
func RecordDemoDuplicate() {
	if m := active(); m != nil {
		m.demosDuplicate.Inc()
	}
}

// RecordAnalysisLatency records analysis latency in milliseconds.
func RecordAnalysisLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.analysisLatency.Observe(latencyMs)
	}
}

// RecordFramesScanned adds n to the scanned frames counter.
func RecordFramesScanned(n int) {
	if m := active(); m != nil && n > 0 {
		m.framesScanned.Add(float64(n))
	}
}

// RecordPlayerSource counts a match by the source of its player figures.
func RecordPlayerSource(source string) {
	if m := active(); m != nil {
		m.playerSource.WithLabelValues(source).Inc()
	}
}

// RecordUnclassifiedPrints adds n unclassified obituary prints.
func RecordUnclassifiedPrints(n int) {
	if m := active(); m != nil && n > 0 {
		m.unclassifiedPrints.Add(float64(n))
	}
}

// RecordUnresolvedTeamkills adds n unresolved anonymous teamkills.
func RecordUnresolvedTeamkills(n int) {
	if m := active(); m != nil && n > 0 {
		m.unresolvedTeamkills.Add(float64(n))
	}
}

// RecordLeaderboardUpdate increments the leaderboard updates counter.
func RecordLeaderboardUpdate() {
	if m := active(); m != nil {
		m.leaderboardUpdates.Inc()
	}
}

// UpdateTotalPlayers sets the number of ranked players.
func UpdateTotalPlayers(count int) {
	if m := active(); m != nil {
		m.totalPlayers.Set(float64(count))
	}
}

// RecordRepositoryUpdateLatency records leaderboard update latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.repositoryUpdateLatency.Observe(latencyMs)
	}
}

// RecordRepositoryQueryLatency records leaderboard query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.repositoryQueryLatency.Observe(latencyMs)
	}
}

// RecordArchiveWrite increments the archive writes counter.
func RecordArchiveWrite() {
	if m := active(); m != nil {
		m.archiveWrites.Inc()
	}
}

// RecordArchiveError increments the archive errors counter.
func RecordArchiveError() {
	if m := active(); m != nil {
		m.archiveErrors.Inc()
	}
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	if m := active(); m != nil {
		m.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	if m := active(); m != nil {
		m.queueCapacity.Set(float64(capacity))
	}
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	if m := active(); m != nil {
		m.queueUtilization.Set(utilization)
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	if m := active(); m != nil {
		m.queueEnqueue.Inc()
	}
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	if m := active(); m != nil {
		m.queueDequeue.Inc()
	}
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	if m := active(); m != nil {
		m.queueEnqueueErrors.Inc()
	}
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	if m := active(); m != nil {
		m.workerCount.Set(float64(count))
	}
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	if m := active(); m != nil {
		m.workerActiveCount.Set(float64(count))
	}
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.workerProcessingLatency.Observe(latencyMs)
	}
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	if m := active(); m != nil {
		m.workerErrors.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := active(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m := active(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if m := active(); m != nil {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
