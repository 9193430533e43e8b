package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Client side. The operation label is the descriptor operation name, which
	// keeps cardinality bounded regardless of the identifiers in the URL.
	ClientRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pinotctl_client_requests_total",
		Help: "Total number of controller requests issued, by operation, method and status code",
	}, []string{"operation", "method", "code"})
	ClientRequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pinotctl_client_request_errors_total",
		Help: "Total number of controller requests that failed before a response was received",
	}, []string{"operation", "method"})
	ClientRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pinotctl_client_request_duration_seconds",
		Help:    "Latency of controller requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "method"})
	ClientRateLimitWait = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pinotctl_client_rate_limit_wait_seconds",
		Help:    "Time spent waiting for the client rate limiter",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})

	// Mock controller side.
	MockControllerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pinotctl_mock_controller_requests_total",
		Help: "Total number of requests served by the mock controller",
	}, []string{"route", "method", "code"})
	MockControllerZKWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pinotctl_mock_controller_zk_writes_total",
		Help: "Total number of coordination-node writes and deletes applied by the mock controller",
	}, []string{"operation"})
	MockControllerThrottled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pinotctl_mock_controller_throttled_requests_total",
		Help: "Total number of requests rejected by the mock controller rate limiter",
	})
)

func init() {
	prometheus.MustRegister(ClientRequests)
	prometheus.MustRegister(ClientRequestErrors)
	prometheus.MustRegister(ClientRequestDuration)
	prometheus.MustRegister(ClientRateLimitWait)
	prometheus.MustRegister(MockControllerRequests)
	prometheus.MustRegister(MockControllerZKWrites)
	prometheus.MustRegister(MockControllerThrottled)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
