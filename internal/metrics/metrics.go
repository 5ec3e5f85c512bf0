package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors for the order-progress service.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	StatusChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_checks_total",
			Help: "Order status lookups by outcome and resolved stage",
		},
		[]string{"outcome", "stage"},
	)

	SignatureFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signature_failures_total",
			Help: "Requests rejected by signature verification",
		},
		[]string{"reason"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of order lookups against the commerce platform",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	AuditRecordFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_record_failures_total",
			Help: "Status-check audit events that could not be recorded",
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors on the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(StatusChecksTotal)
		prometheus.MustRegister(SignatureFailuresTotal)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(AuditRecordFailuresTotal)
	})
}
