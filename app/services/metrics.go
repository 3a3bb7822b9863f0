package services

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests issued to the academy backend, partitioned by outcome
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_upstream_requests_total",
			Help: "Total number of requests sent to the academy backend",
		},
		[]string{"method", "path", "outcome"},
	)

	// Latency of academy backend calls
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_upstream_request_duration_seconds",
			Help:    "Academy backend request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func observeUpstreamRequest(method, path, outcome string, elapsed time.Duration) {
	path = metricPath(path)
	upstreamRequestsTotal.WithLabelValues(method, path, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// metricPath collapses record ids to a placeholder so the label set stays
// low-cardinality.
func metricPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		switch seg {
		case "", "tutors", "courses", "users", "statistics", "dashboard", "entity", "toggle-status":
		default:
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
