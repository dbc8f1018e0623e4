package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts outbound calls by endpoint and outcome
	// ("ok", "status_<code>", "transport", "circuit_open").
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_proxy",
		Name:      "upstream_requests_total",
		Help:      "Outbound requests to the weather provider.",
	}, []string{"endpoint", "outcome"})

	// UpstreamDuration observes outbound call latency, retries included.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weather_proxy",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of outbound requests to the weather provider.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// HandlerFailures counts failed API responses by route and error kind.
	HandlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_proxy",
		Name:      "handler_failures_total",
		Help:      "API requests answered with an error body.",
	}, []string{"route", "kind"})
)
