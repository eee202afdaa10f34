package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests sent to upstream services",
	}, []string{"service", "status"})

	UpstreamFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_failures_total",
		Help: "Total number of upstream requests that failed before a response",
	}, []string{"service"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_latency_seconds",
		Help:    "Latency of upstream requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})

	OrdersForwardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_forwarded_total",
		Help: "Total number of orders forwarded to the order service",
	}, []string{"outcome"})

	OrderEventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_events_consumed_total",
		Help: "Total number of order audit events consumed",
	}, []string{"event_type"})

	CheckoutTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_transitions_total",
		Help: "Total number of checkout state transitions",
	}, []string{"state"})

	CartStorageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_errors_total",
		Help: "Total number of recovered cart storage failures",
	}, []string{"op"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
