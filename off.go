//go:build chanscope_off

package chanscope

// Passthrough build. Handles wire straight to the underlying conduit:
// no registry, no counters, no goroutines, no snapshot server, and none
// of their packages linked into the binary. Wrap still validates
// capacity so a program that builds with instrumentation off cannot
// start failing when it is turned back on.

import (
	"iter"

	"github.com/zulfikawr/chanscope/conduit"
)

// Chan instruments an existing Go channel. In this build it only adapts
// the channel; nothing is recorded.
func Chan[T any](ch chan T, _ ...Option) (*Sender[T], *Receiver[T]) {
	c := conduit.NewChan(ch)
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// Unbounded creates a channel whose sends never block.
func Unbounded[T any](_ ...Option) (*Sender[T], *Receiver[T]) {
	c := conduit.NewUnbounded[T]()
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// Oneshot creates a channel that carries a single value.
func Oneshot[T any](_ ...Option) (*Sender[T], *Receiver[T]) {
	c := conduit.NewOneshot[T]()
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// Wrap adapts an arbitrary conduit. The capacity requirement is
// enforced even though the value goes unused here.
func Wrap[T any](inner conduit.Conduit[T], opts ...Option) (*Sender[T], *Receiver[T], error) {
	o := buildOptions(opts)
	if o.capacity < 0 {
		if _, ok := inner.(conduit.CapacityReporter); !ok {
			return nil, nil, errCapacityRequired()
		}
	}
	return &Sender[T]{c: inner}, &Receiver[T]{c: inner}, nil
}

// Stream returns src unchanged.
func Stream[T any](src iter.Seq[T], _ ...Option) iter.Seq[T] {
	return src
}

// Guard is inert in this build; Close prints nothing.
type Guard struct{}

// NewGuard returns an inert guard.
func NewGuard(_ ...GuardOption) *Guard {
	return &Guard{}
}

// Close is a no-op.
func (g *Guard) Close() {}

// Shutdown is a no-op; no server runs in this build.
func Shutdown() error {
	return nil
}
