package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream lookup outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeNotFound       = "not_found"
	OutcomeRateLimited    = "rate_limited"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeAPIError       = "api_error"
	OutcomeTransportError = "transport_error"
)

var (
	// HTTPRequestsTotal counts inbound requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "septic_canary_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	// HTTPRequestDuration observes inbound request latency by method, route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "septic_canary_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	// UpstreamLookupsTotal counts HouseCanary lookups by outcome.
	UpstreamLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "septic_canary_upstream_lookups_total",
			Help: "Total number of HouseCanary property detail lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordUpstreamOutcome counts one upstream lookup.
func RecordUpstreamOutcome(outcome string) {
	UpstreamLookupsTotal.WithLabelValues(outcome).Inc()
}
