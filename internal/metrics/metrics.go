// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracking_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// OperationsTotal counts service operations by outcome; outcome is "ok" or an error kind.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_operations_total",
			Help: "Shipment operations by name and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	OverdueShipmentsMarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_overdue_shipments_marked_total",
			Help: "Shipments moved to delayed by the overdue sweep.",
		},
	)
)
