package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/zulfikawr/chanscope/internal/logging"
	"github.com/zulfikawr/chanscope/internal/metrics"
)

// Registry tracks every instrumented entity in the process. IDs are
// allocated from a monotonic counter and never reused; records against
// unknown IDs are dropped with a rate-limited warning so a misbehaving
// proxy can degrade observability but never the host program.
type Registry struct {
	clk      clock.Clock
	start    time.Time
	logLimit int

	nextID atomic.Uint64

	mu          sync.RWMutex
	entities    map[uint64]*entity
	order       []uint64
	sourceIters map[string]int

	warnLimit *rate.Limiter
}

// New builds an empty registry. logLimit caps each entity's message log
// ring; clk supplies time so tests can use a mock.
func New(clk clock.Clock, logLimit int) *Registry {
	return &Registry{
		clk:         clk,
		start:       clk.Now(),
		logLimit:    logLimit,
		entities:    make(map[uint64]*entity),
		sourceIters: make(map[string]int),
		warnLimit:   rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// RegisterOptions carries everything the registry needs to admit a new
// entity. Source is the resolved call site ("pkg/file.go:12"); Capacity
// is -1 for kinds without one.
type RegisterOptions struct {
	Kind       Kind
	Capacity   int
	Label      string
	Source     string
	TypeName   string
	TypeSize   int
	LogEnabled bool
}

// Register admits a new entity and returns its ID. Entities registered
// from the same call site get distinguishing "-2", "-3" label suffixes
// unless a custom label was supplied.
func (r *Registry) Register(opts RegisterOptions) uint64 {
	id := r.nextID.Add(1)

	e := &entity{
		id:         id,
		kind:       opts.Kind,
		capacity:   opts.Capacity,
		source:     opts.Source,
		typeName:   opts.TypeName,
		typeSize:   opts.TypeSize,
		logEnabled: opts.LogEnabled,
		createdNS:  r.elapsedNS(),
	}
	if e.logEnabled {
		e.log = newRing(r.logLimit)
	}

	r.mu.Lock()
	r.sourceIters[opts.Source]++
	e.iter = r.sourceIters[opts.Source]
	if opts.Label != "" {
		e.label = opts.Label
		e.customLabel = true
	} else {
		e.label = autoLabel(opts.Source, e.iter)
	}
	r.entities[id] = e
	r.order = append(r.order, id)
	r.mu.Unlock()

	metrics.RecordRegistered(opts.Kind.String())
	logging.Debug("entity registered",
		zap.Uint64("id", id),
		zap.String("kind", opts.Kind.String()),
		zap.String("label", e.label))
	return id
}

// autoLabel derives a display label from the call site, suffixing repeat
// registrations from the same line.
func autoLabel(source string, iter int) string {
	if iter <= 1 {
		return source
	}
	return fmt.Sprintf("%s-%d", source, iter)
}

// RecordSend notes one completed send of approximately size bytes. When
// the entity logs messages, msg is appended to its ring.
func (r *Registry) RecordSend(id uint64, size int, msg string) {
	e := r.lookup(id, "send")
	if e == nil {
		return
	}
	n := e.sent.Add(1)
	e.sentBytes.Add(uint64(size))
	e.appendLog(n, r.elapsedNS(), msg)
	metrics.RecordSend(e.kind.String())
}

// RecordReceive notes one completed receive of approximately size bytes.
func (r *Registry) RecordReceive(id uint64, size int) {
	e := r.lookup(id, "receive")
	if e == nil {
		return
	}
	e.received.Add(1)
	e.recvBytes.Add(uint64(size))
	metrics.RecordReceive(e.kind.String())
}

// RecordYield notes one item yielded by a stream.
func (r *Registry) RecordYield(id uint64, size int, msg string) {
	e := r.lookup(id, "yield")
	if e == nil {
		return
	}
	n := e.yielded.Add(1)
	e.sentBytes.Add(uint64(size))
	e.appendLog(n, r.elapsedNS(), msg)
	metrics.RecordYield()
}

// Close marks the entity closed. Closing an already closed or unknown
// entity is a no-op, so both proxy ends may report the close.
func (r *Registry) Close(id uint64) {
	e := r.lookup(id, "close")
	if e == nil {
		return
	}
	if e.close(r.elapsedNS()) {
		metrics.RecordClosed()
		logging.Debug("entity closed", zap.Uint64("id", id))
	}
}

// lookup resolves an ID under the read lock, warning (rate-limited) when
// a record arrives for an entity that was never registered.
func (r *Registry) lookup(id uint64, op string) *entity {
	r.mu.RLock()
	e := r.entities[id]
	r.mu.RUnlock()
	if e == nil && r.warnLimit.Allow() {
		logging.Warn("record for unknown entity",
			zap.Uint64("id", id),
			zap.String("op", op))
	}
	return e
}

// ElapsedNS returns nanoseconds since the registry was created.
func (r *Registry) ElapsedNS() uint64 {
	return r.elapsedNS()
}

func (r *Registry) elapsedNS() uint64 {
	d := r.clk.Since(r.start)
	if d < 0 {
		return 0
	}
	return uint64(d.Nanoseconds())
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}
