package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuditEntriesTotal counts committed audit entries by action (created, updated, deleted).
	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of audit log entries written by action",
		},
		[]string{"action"},
	)

	// NotificationsTotal counts notification dispatch outcomes (sent, skipped, error).
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of admin notification dispatch attempts by outcome",
		},
		[]string{"outcome"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AuditEntriesTotal, NotificationsTotal)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /v1/employees/123 -> /v1/employees/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuditEntries increments the audit entry counter for the given action.
func IncAuditEntries(action string) {
	AuditEntriesTotal.WithLabelValues(action).Inc()
}

// IncNotifications increments the notification counter for the given outcome (sent, skipped, error).
func IncNotifications(outcome string) {
	NotificationsTotal.WithLabelValues(outcome).Inc()
}
