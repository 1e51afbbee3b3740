package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for statusboard
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec
	RateLimitedTotal     prometheus.Counter

	// Dashboard Metrics
	PollFetchesTotal  *prometheus.CounterVec
	PollFetchDuration *prometheus.HistogramVec
	PollCyclesTotal   prometheus.Counter
}

// NewMetricsRegistry registers all metrics with reg. Passing nil uses the
// default Prometheus registerer.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statusboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statusboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statusboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "statusboard_http_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),

		// Dashboard Metrics
		PollFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statusboard_dashboard_fetches_total",
				Help: "Dashboard fetches by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		PollFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statusboard_dashboard_fetch_duration_seconds",
				Help:    "Dashboard fetch latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"resource"},
		),
		PollCyclesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "statusboard_dashboard_poll_cycles_total",
				Help: "Completed dashboard poll cycles",
			},
		),
	}
}
