// Package metrics provides Prometheus metrics for the hooplab pipeline and API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline metrics
	pipelineRuns     *prometheus.CounterVec
	stageLatency     *prometheus.HistogramVec
	rowsClustered    prometheus.Gauge
	rowsDropped      prometheus.Gauge
	duplicateRows    prometheus.Gauge
	columnsMissing   prometheus.Counter
	clusterCount     prometheus.Gauge
	clusterSize      *prometheus.GaugeVec
	bestInertia      prometheus.Gauge
	kmeansIterations prometheus.Histogram
	lastRunTimestamp prometheus.Gauge

	// Analysis metrics
	playerLookups    *prometheus.CounterVec
	weakSpotsFlagged *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init rebuilds the global manager on a fresh registry with opts applied.
// Call it once at startup, before any recorder runs.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hooplab",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome",
	}, []string{"outcome"})

	m.stageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_latency_milliseconds",
		Help:      "Latency of each pipeline stage in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.rowsClustered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_clustered",
		Help:      "Rows that survived feature preparation in the last run",
	})

	m.rowsDropped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped",
		Help:      "Rows dropped for missing statistics in the last run",
	})

	m.duplicateRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_rows",
		Help:      "Duplicate player-season rows collapsed in the last run",
	})

	m.columnsMissing = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "columns_missing_total",
		Help:      "Declared statistic columns absent from an input dataset",
	})

	m.clusterCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cluster_count",
		Help:      "Number of clusters in the current run",
	})

	m.clusterSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cluster_size",
		Help:      "Members per cluster in the current run",
	}, []string{"cluster", "role"})

	m.bestInertia = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "kmeans_inertia",
		Help:      "Best within-cluster sum of squares of the current run",
	})

	m.kmeansIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "kmeans_iterations",
		Help:      "Lloyd iterations used by each k-means initialization",
		Buckets:   prometheus.LinearBuckets(0, 25, 13),
	})

	m.lastRunTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_unix",
		Help:      "Unix timestamp of the last successful run",
	})

	m.playerLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_lookups_total",
		Help:      "Player analysis requests by outcome",
	}, []string{"outcome"})

	m.weakSpotsFlagged = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weak_spots_total",
		Help:      "Weak spots flagged by statistic",
	}, []string{"stat"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and type",
	}, []string{"component", "type"})
}

// RecordPipelineRun counts a finished run; outcome is "ok" or an error kind.
func RecordPipelineRun(outcome string) {
	if globalManager.enabled {
		globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
	}
}

// RecordStageLatency observes the duration of one pipeline stage.
func RecordStageLatency(stage string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.stageLatency.WithLabelValues(stage).Observe(latencyMs)
	}
}

// UpdateRowCounts publishes the row bookkeeping of the latest preparation.
func UpdateRowCounts(clustered, dropped, duplicates int) {
	if globalManager.enabled {
		globalManager.rowsClustered.Set(float64(clustered))
		globalManager.rowsDropped.Set(float64(dropped))
		globalManager.duplicateRows.Set(float64(duplicates))
	}
}

// RecordMissingColumns adds n absent declared columns.
func RecordMissingColumns(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.columnsMissing.Add(float64(n))
	}
}

// UpdateClusters publishes cluster count and the size of each labelled cluster.
func UpdateClusters(sizes map[string]int, roles map[string]string) {
	if !globalManager.enabled {
		return
	}
	globalManager.clusterSize.Reset()
	globalManager.clusterCount.Set(float64(len(sizes)))
	for id, n := range sizes {
		globalManager.clusterSize.WithLabelValues(id, roles[id]).Set(float64(n))
	}
}

// UpdateInertia publishes the best inertia of the current assignment.
func UpdateInertia(inertia float64) {
	if globalManager.enabled {
		globalManager.bestInertia.Set(inertia)
	}
}

// RecordKMeansIterations observes how many iterations one initialization took.
func RecordKMeansIterations(n int) {
	if globalManager.enabled {
		globalManager.kmeansIterations.Observe(float64(n))
	}
}

// UpdateLastRun records the unix time of the last successful run.
func UpdateLastRun(unix int64) {
	if globalManager.enabled {
		globalManager.lastRunTimestamp.Set(float64(unix))
	}
}

// RecordPlayerLookup counts a player analysis request.
func RecordPlayerLookup(outcome string) {
	if globalManager.enabled {
		globalManager.playerLookups.WithLabelValues(outcome).Inc()
	}
}

// RecordWeakSpot counts a flagged statistic.
func RecordWeakSpot(stat string) {
	if globalManager.enabled {
		globalManager.weakSpotsFlagged.WithLabelValues(stat).Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordError counts an error raised by a component.
func RecordError(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// GetRegistry returns the registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
