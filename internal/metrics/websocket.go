package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WebSocket Metrics
//
// These metrics track live snapshot streaming over WebSocket connections.
// Use them to monitor how many viewers are attached and how often
// snapshots go out.

var (
	// ActiveWebSocketClients tracks currently connected snapshot viewers.
	ActiveWebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanscope_websocket_clients_active",
			Help: "Number of active WebSocket snapshot clients",
		},
	)

	// SnapshotPushesTotal counts snapshot documents pushed to clients.
	SnapshotPushesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chanscope_websocket_pushes_total",
			Help: "Total number of snapshots pushed over WebSocket",
		},
	)
)

// Helper functions for WebSocket metrics

// ClientConnected increments the active client counter.
func ClientConnected() {
	ActiveWebSocketClients.Inc()
}

// ClientDisconnected decrements the active client counter.
func ClientDisconnected() {
	ActiveWebSocketClients.Dec()
}

// RecordPush records one snapshot pushed to a client.
func RecordPush() {
	SnapshotPushesTotal.Inc()
}
