package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entity Metrics
//
// These metrics track the lifecycle and traffic of instrumented channels
// and streams. Use them to see how much message flow passes through the
// proxies and how many entities a process has accumulated.

var (
	// EntitiesRegisteredTotal counts entity registrations.
	// Labels: kind (bounded, unbounded, oneshot, stream)
	EntitiesRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanscope_entities_registered_total",
			Help: "Total number of instrumented entities registered",
		},
		[]string{"kind"},
	)

	// ActiveEntities tracks entities that have been registered and not
	// yet closed.
	ActiveEntities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanscope_entities_active",
			Help: "Number of instrumented entities not yet closed",
		},
	)

	// EntityEventsTotal counts proxy operations as they complete.
	// Labels: kind, op (send, recv, yield)
	EntityEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanscope_entity_events_total",
			Help: "Total number of completed proxy operations",
		},
		[]string{"kind", "op"},
	)
)

// Helper functions for entity metrics

// RecordRegistered records a new entity of the given kind.
func RecordRegistered(kind string) {
	EntitiesRegisteredTotal.WithLabelValues(kind).Inc()
	ActiveEntities.Inc()
}

// RecordClosed records an entity transitioning to closed.
func RecordClosed() {
	ActiveEntities.Dec()
}

// RecordSend records one completed send.
func RecordSend(kind string) {
	EntityEventsTotal.WithLabelValues(kind, "send").Inc()
}

// RecordReceive records one completed receive.
func RecordReceive(kind string) {
	EntityEventsTotal.WithLabelValues(kind, "recv").Inc()
}

// RecordYield records one stream item yielded.
func RecordYield() {
	EntityEventsTotal.WithLabelValues("stream", "yield").Inc()
}
