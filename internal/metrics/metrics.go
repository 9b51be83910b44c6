// Package metrics holds the Prometheus instruments of the content API.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_http_requests_total",
			Help: "Count of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitecms_http_request_duration_seconds",
			Help:    "Latency of HTTP requests by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

	ContentMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_content_mutations_total",
			Help: "Count of committed content mutations by entity and action.",
		}, []string{"entity", "action"})

	ViewCountErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sitecms_view_count_errors_total",
			Help: "Count of failed best-effort view counter increments.",
		})

	AuditDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sitecms_audit_dropped_total",
			Help: "Count of audit entries the sink failed to record.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ContentMutationsTotal,
		ViewCountErrorsTotal,
		AuditDroppedTotal,
	)
}

// RecordMutation counts one committed create, update or delete.
func RecordMutation(entity, action string) {
	ContentMutationsTotal.WithLabelValues(entity, action).Inc()
}
