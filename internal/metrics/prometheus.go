package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	ResearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_research_requests_total",
			Help: "Total number of research pipeline runs",
		},
		[]string{"input_type", "status"}, // status: success|error
	)

	ResearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_research_duration_seconds",
			Help:    "End-to-end research pipeline duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"input_type"},
	)

	// Provider metrics
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_provider_calls_total",
			Help: "Total number of grounded generation calls",
		},
		[]string{"provider", "status"}, // status: success|unavailable|rejected
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_provider_latency_seconds",
			Help:    "Grounded generation latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	ProviderRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_provider_retries_total",
			Help: "Total number of automatic retries after transient provider failure",
		},
	)

	// Store metrics
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_store_operations_total",
			Help: "Total number of research store operations",
		},
		[]string{"operation", "status"}, // operation: create|list|get|update|delete
	)

	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_store_duration_seconds",
			Help:    "Research store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(ResearchRequests)
	prometheus.MustRegister(ResearchDuration)
	prometheus.MustRegister(ProviderCalls)
	prometheus.MustRegister(ProviderLatency)
	prometheus.MustRegister(ProviderRetries)
	prometheus.MustRegister(StoreOperations)
	prometheus.MustRegister(StoreDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordResearch records one pipeline run
func RecordResearch(inputType string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ResearchRequests.WithLabelValues(inputType, status).Inc()
	ResearchDuration.WithLabelValues(inputType).Observe(duration.Seconds())
}

// RecordProviderCall records one grounded generation call
func RecordProviderCall(provider, status string, latency time.Duration) {
	ProviderCalls.WithLabelValues(provider, status).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordStoreOperation records one persistence round trip
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	StoreOperations.WithLabelValues(operation, status).Inc()
	StoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
