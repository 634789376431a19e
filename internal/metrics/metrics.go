// Package metrics holds the prometheus collectors of the leave service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leave_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_decisions_total",
		Help: "Leave requests decided, by resulting status",
	}, []string{"status"})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_notifications_total",
		Help: "Decision notifications by result (sent, skipped, failed)",
	}, []string{"result"})
)

// Notification results
const (
	NotificationSent    = "sent"
	NotificationSkipped = "skipped"
	NotificationFailed  = "failed"
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDecision counts a leave request moving to status
func ObserveDecision(status string) {
	leaveDecisions.WithLabelValues(status).Inc()
}

// ObserveNotification counts a notification attempt by result
func ObserveNotification(result string) {
	notifications.WithLabelValues(result).Inc()
}
