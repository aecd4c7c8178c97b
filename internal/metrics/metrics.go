// Package metrics provides Prometheus metrics for monitoring chanscope
// itself.
//
// The package is organized into logical modules:
//
//   - entities.go: Instrumented entity lifecycle and traffic metrics
//   - server.go: Snapshot HTTP endpoint performance metrics
//   - websocket.go: Live snapshot push connection metrics
//
// Usage Examples:
//
// Recording entity traffic:
//
//	metrics.RecordRegistered("bounded")
//	// ... proxy operates ...
//	metrics.RecordSend("bounded")
//	metrics.RecordClosed()
//
// Timing an export:
//
//	start := time.Now()
//	doc := buildDocument(snapshot)
//	metrics.ExportBuildDuration.Observe(time.Since(start).Seconds())
//
// All metrics are automatically registered with Prometheus and exposed
// via the /metrics endpoint of the snapshot server.
package metrics
