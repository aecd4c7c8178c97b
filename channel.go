//go:build !chanscope_off

package chanscope

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"github.com/zulfikawr/chanscope/conduit"
	"github.com/zulfikawr/chanscope/internal/registry"
)

// Chan instruments an existing Go channel. The channel is adopted as
// the middle stage of the proxy pipeline; operate on it only through
// the returned handles afterwards. Capacity is read from the channel
// unless WithCapacity overrides it.
func Chan[T any](ch chan T, opts ...Option) (*Sender[T], *Receiver[T]) {
	o := buildOptions(opts)
	capacity := cap(ch)
	if o.capacity >= 0 {
		capacity = o.capacity
	}
	return newPipeline(conduit.NewChan(ch), registry.KindBounded, capacity, o, callSite(2))
}

// Unbounded creates an instrumented channel whose sends never block.
func Unbounded[T any](opts ...Option) (*Sender[T], *Receiver[T]) {
	return newPipeline(conduit.NewUnbounded[T](), registry.KindUnbounded, -1, buildOptions(opts), callSite(2))
}

// Oneshot creates an instrumented channel that carries a single value.
// The first successful Send consumes the sender and marks the entity
// closed; the value still reaches the receiver.
func Oneshot[T any](opts ...Option) (*Sender[T], *Receiver[T]) {
	return newPipeline(conduit.NewOneshot[T](), registry.KindOneshot, 1, buildOptions(opts), callSite(2))
}

// Wrap instruments an arbitrary conduit. The conduit must report its
// capacity or the call must supply one with WithCapacity; otherwise
// Wrap returns a ConfigError and nothing is registered.
func Wrap[T any](inner conduit.Conduit[T], opts ...Option) (*Sender[T], *Receiver[T], error) {
	o := buildOptions(opts)
	capacity := o.capacity
	if capacity < 0 {
		rep, ok := inner.(conduit.CapacityReporter)
		if !ok {
			return nil, nil, errCapacityRequired()
		}
		capacity = rep.Capacity()
	}
	s, r := newPipeline(inner, registry.KindBounded, capacity, o, callSite(2))
	return s, r, nil
}

// pipeline routes values user -> stageIn -> inner -> stageOut -> user
// through two pump goroutines. Counters update at the user-facing
// boundaries only, so sent and received reflect what the application
// observed, not pump progress.
type pipeline[T any] struct {
	id         uint64
	kind       registry.Kind
	reg        *registry.Registry
	stageIn    conduit.Conduit[T]
	inner      conduit.Conduit[T]
	stageOut   conduit.Conduit[T]
	cancel     context.CancelFunc
	logEnabled bool
	itemSize   int
}

func newPipeline[T any](inner conduit.Conduit[T], kind registry.Kind, capacity int, o options, source string) (*Sender[T], *Receiver[T]) {
	reg := ensureInit()
	p := &pipeline[T]{
		kind:       kind,
		reg:        reg,
		stageIn:    newStage[T](kind, capacity),
		inner:      inner,
		stageOut:   newStage[T](kind, capacity),
		logEnabled: o.log,
		itemSize:   int(reflect.TypeFor[T]().Size()),
	}
	p.id = reg.Register(registry.RegisterOptions{
		Kind:       kind,
		Capacity:   capacity,
		Label:      o.label,
		Source:     source,
		TypeName:   reflect.TypeFor[T]().String(),
		TypeSize:   p.itemSize,
		LogEnabled: o.log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go pump(ctx, p.stageIn, p.inner)
	go pump(ctx, p.inner, p.stageOut)

	sender := &Sender[T]{c: p.stageIn, afterSend: p.recordSend, closeFn: p.closeFromSender}
	receiver := &Receiver[T]{c: p.stageOut, afterRecv: p.recordRecv, onClosed: p.observeClosed, closeFn: p.closeFromReceiver}
	return sender, receiver
}

// newStage builds a proxy stage matching the wrapped conduit's shape,
// so the pipeline never changes blocking behavior: bounded stages hold
// the same capacity, unbounded stages never block, oneshot stages carry
// one value.
func newStage[T any](kind registry.Kind, capacity int) conduit.Conduit[T] {
	switch kind {
	case registry.KindUnbounded:
		return conduit.NewUnbounded[T]()
	case registry.KindOneshot:
		return conduit.NewOneshot[T]()
	default:
		if capacity < 0 {
			capacity = 0
		}
		return conduit.NewChan(make(chan T, capacity))
	}
}

// pump forwards values between adjacent stages. When the upstream stage
// closes and drains, the pump closes the downstream stage and exits, so
// a sender-side Close ripples to the receiver without losing buffered
// values.
func pump[T any](ctx context.Context, from, to conduit.Conduit[T]) {
	for {
		v, err := from.Recv(ctx)
		if err != nil {
			if errors.Is(err, conduit.ErrClosed) {
				_ = to.Close()
			}
			return
		}
		if err := to.Send(ctx, v); err != nil {
			return
		}
	}
}

func (p *pipeline[T]) recordSend(v T) {
	size, msg := p.estimate(v)
	p.reg.RecordSend(p.id, size, msg)
	if p.kind == registry.KindOneshot {
		// The sender is consumed by its single send.
		_ = p.closeFromSender()
	}
}

func (p *pipeline[T]) recordRecv(v T) {
	size, _ := p.estimate(v)
	p.reg.RecordReceive(p.id, size)
}

// estimate sizes a value for the byte counters. With logging enabled
// the rendering is reused as the log message; otherwise the static type
// size stands in and no formatting happens on the hot path.
func (p *pipeline[T]) estimate(v T) (int, string) {
	if p.logEnabled {
		msg := fmt.Sprintf("%v", v)
		return len(msg), msg
	}
	return p.itemSize, ""
}

func (p *pipeline[T]) observeClosed() {
	p.reg.Close(p.id)
}

func (p *pipeline[T]) closeFromSender() error {
	err := p.stageIn.Close()
	p.reg.Close(p.id)
	return err
}

// closeFromReceiver tears the whole pipeline down: senders unblock with
// ErrClosed, pumps stop, and any buffered values are dropped.
func (p *pipeline[T]) closeFromReceiver() error {
	p.cancel()
	err := multierr.Combine(
		p.stageIn.Close(),
		p.inner.Close(),
		p.stageOut.Close(),
	)
	p.reg.Close(p.id)
	return err
}
