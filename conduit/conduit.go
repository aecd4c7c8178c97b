// Package conduit defines a uniform send/receive contract over the
// message-passing primitives chanscope instruments: buffered Go channels,
// an unbounded queue, and a single-value oneshot.
//
// All implementations are safe for concurrent use from any number of
// goroutines, and Close is always idempotent. Closing never panics and
// never drops values already accepted: receivers drain remaining values
// first and only then observe ErrClosed.
package conduit

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned by operations on a closed conduit once no
	// buffered values remain.
	ErrClosed = errors.New("conduit: closed")

	// ErrFull is returned by TrySend when the buffer has no room.
	ErrFull = errors.New("conduit: full")

	// ErrEmpty is returned by TryRecv when no value is ready.
	ErrEmpty = errors.New("conduit: empty")
)

// Conduit is a point-to-point value carrier. Send and Recv block until the
// operation completes, the conduit closes, or ctx is done; TrySend and
// TryRecv never block.
type Conduit[T any] interface {
	Send(ctx context.Context, v T) error
	TrySend(v T) error
	Recv(ctx context.Context) (T, error)
	TryRecv() (T, error)
	Close() error
}

// CapacityReporter is implemented by conduits with a fixed buffer capacity.
// Conduits without one (the unbounded queue) do not implement it.
type CapacityReporter interface {
	Capacity() int
}
