// Package metrics exposes the gateway's prometheus collectors. The provider
// vectors are labelled by gateway so one query can show which integration is
// failing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qris_gateway",
			Name:      "provider_requests_total",
			Help:      "Outbound provider API calls by gateway, operation and outcome.",
		},
		[]string{"gateway", "op", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qris_gateway",
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound provider API call latency.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 8},
		},
		[]string{"gateway", "op"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qris_gateway",
			Name:      "http_requests_total",
			Help:      "Inbound API requests by method and status class.",
		},
		[]string{"method", "status"},
	)
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal, ProviderRequestDuration, HTTPRequestsTotal)
}

func IncProvider(gateway, op, status string) {
	ProviderRequestsTotal.WithLabelValues(gateway, op, status).Inc()
}

func ObserveProvider(gateway, op string, seconds float64) {
	ProviderRequestDuration.WithLabelValues(gateway, op).Observe(seconds)
}

func IncHTTP(method, status string) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
}
