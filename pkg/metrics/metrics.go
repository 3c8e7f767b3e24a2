package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is the registry exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets for request and storage latencies, milliseconds up to tens of seconds
	CustomAPIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Snapshot storage metrics
	StorageOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Snapshot storage operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	StorageOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of snapshot storage operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Store collection sizes
	CollectionSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "alumni_connect_collection_entries",
			Help: "Number of entities held per collection",
		},
		[]string{"collection"},
	)

	// Business Metrics
	MentorshipRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_connect_mentorship_requests_total",
			Help: "Total number of mentorship requests",
		},
		[]string{"status"},
	)

	EntityDeletions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_connect_entity_deletions_total",
			Help: "Total number of delete operations by entity",
		},
		[]string{"entity"},
	)

	EventsCreated = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "alumni_connect_events_created_total",
			Help: "Total number of events created",
		},
	)

	ProfileUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_connect_profile_updates_total",
			Help: "Total number of alumni profile updates",
		},
		[]string{"status"},
	)

	DashboardViews = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_connect_dashboard_views_total",
			Help: "Total number of dashboard renders",
		},
		[]string{"format"},
	)

	Exports = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_connect_exports_total",
			Help: "Total number of workbook exports",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
