package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot Server Metrics
//
// These metrics track the snapshot HTTP endpoints. Use them to spot
// polling clients that hit the server too hard and to watch export cost
// as the entity table grows.

var (
	// SnapshotRequestDuration tracks snapshot request processing time.
	// Labels: path (/channels, /streams, /export), status (200, 404, 500)
	SnapshotRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chanscope_http_request_duration_seconds",
			Help:    "Snapshot request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "status"},
	)

	// SnapshotRequestsTotal counts snapshot requests by endpoint and status.
	// Labels: path, status
	SnapshotRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanscope_http_requests_total",
			Help: "Total number of snapshot requests",
		},
		[]string{"path", "status"},
	)

	// ExportBuildDuration tracks how long assembling an export document
	// takes, which grows with the number of registered entities.
	ExportBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chanscope_export_build_seconds",
			Help:    "Time to assemble one export document",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)
)
