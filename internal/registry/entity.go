// Package registry maintains the process-wide table of instrumented
// entities and their live counters. The hot path (recording sends,
// receives and yields) touches only a shared read-lock and per-entity
// atomics, so traffic on distinct entities never serializes.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Kind classifies an instrumented entity. The set is closed: every proxy
// the library hands out is one of these four.
type Kind int

const (
	KindBounded Kind = iota
	KindUnbounded
	KindOneshot
	KindStream
)

// String returns the bare kind name without capacity decoration.
func (k Kind) String() string {
	switch k {
	case KindBounded:
		return "bounded"
	case KindUnbounded:
		return "unbounded"
	case KindOneshot:
		return "oneshot"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Render returns the display form used in exports and the guard report,
// with the declared capacity folded into bounded kinds.
func (k Kind) Render(capacity int) string {
	if k == KindBounded && capacity >= 0 {
		return fmt.Sprintf("bounded[%d]", capacity)
	}
	return k.String()
}

// Entity states. An entity is active from registration until its first
// close and stays closed forever after.
const (
	StateActive = "active"
	StateClosed = "closed"
)

// LogEntry is one recorded message. Index is the ordinal of the event on
// its entity (1-based), Timestamp is nanoseconds since registry start.
type LogEntry struct {
	Index     uint64 `json:"index"`
	Timestamp uint64 `json:"timestamp"`
	Message   string `json:"message"`
}

// ring is a fixed-capacity log buffer. Appending beyond capacity evicts
// the oldest entry. Not safe for concurrent use; callers hold entity.mu.
type ring struct {
	entries []LogEntry
	start   int
	count   int
}

func newRing(capacity int) *ring {
	return &ring{entries: make([]LogEntry, capacity)}
}

func (r *ring) push(e LogEntry) {
	if r.count < len(r.entries) {
		r.entries[(r.start+r.count)%len(r.entries)] = e
		r.count++
		return
	}
	r.entries[r.start] = e
	r.start = (r.start + 1) % len(r.entries)
}

// inOrder returns the retained entries oldest first.
func (r *ring) inOrder() []LogEntry {
	out := make([]LogEntry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return out
}

// entity is one instrumented channel or stream. Identity fields are set
// at registration and never change; counters are atomics; the log ring
// and close state sit behind a small per-entity mutex.
type entity struct {
	id          uint64
	kind        Kind
	capacity    int // -1 when the kind has no capacity
	label       string
	customLabel bool
	source      string
	iter        int
	typeName    string
	typeSize    int
	logEnabled  bool
	createdNS   uint64

	sent      atomic.Uint64
	received  atomic.Uint64
	yielded   atomic.Uint64
	sentBytes atomic.Uint64
	recvBytes atomic.Uint64

	mu       sync.Mutex
	closed   bool
	closedNS uint64
	log      *ring
}

// appendLog records a message with the given event ordinal. No-op when
// logging is disabled for this entity.
func (e *entity) appendLog(index uint64, nowNS uint64, msg string) {
	if !e.logEnabled {
		return
	}
	e.mu.Lock()
	e.log.push(LogEntry{Index: index, Timestamp: nowNS, Message: msg})
	e.mu.Unlock()
}

// close transitions the entity to closed. Returns false if it already
// was, making repeated closes from either end harmless.
func (e *entity) close(nowNS uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.closed = true
	e.closedNS = nowNS
	return true
}
