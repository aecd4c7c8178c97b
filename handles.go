package chanscope

import (
	"context"
	"errors"

	"github.com/zulfikawr/chanscope/conduit"
)

// Sender is the sending half of an instrumented channel. It satisfies
// the send side of conduit.Conduit, so wrapped and plain conduits are
// interchangeable at call sites.
type Sender[T any] struct {
	c         conduit.Conduit[T]
	afterSend func(T)
	closeFn   func() error
}

// Send delivers v, blocking until there is room, the conduit closes, or
// ctx is done.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	if err := s.c.Send(ctx, v); err != nil {
		return err
	}
	if s.afterSend != nil {
		s.afterSend(v)
	}
	return nil
}

// TrySend delivers v without blocking. It returns conduit.ErrFull when
// the buffer has no room and conduit.ErrClosed after Close.
func (s *Sender[T]) TrySend(v T) error {
	if err := s.c.TrySend(v); err != nil {
		return err
	}
	if s.afterSend != nil {
		s.afterSend(v)
	}
	return nil
}

// Close marks the sending side done. Values already sent remain
// receivable. Close is idempotent.
func (s *Sender[T]) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return s.c.Close()
}

// Receiver is the receiving half of an instrumented channel.
type Receiver[T any] struct {
	c         conduit.Conduit[T]
	afterRecv func(T)
	onClosed  func()
	closeFn   func() error
}

// Recv returns the next value, blocking until one arrives, the conduit
// closes and drains, or ctx is done. After the sender closes, buffered
// values are still delivered; only then does Recv return
// conduit.ErrClosed.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	v, err := r.c.Recv(ctx)
	if err != nil {
		if errors.Is(err, conduit.ErrClosed) && r.onClosed != nil {
			r.onClosed()
		}
		return v, err
	}
	if r.afterRecv != nil {
		r.afterRecv(v)
	}
	return v, nil
}

// TryRecv returns the next value without blocking. It returns
// conduit.ErrEmpty when nothing is buffered and conduit.ErrClosed once
// the conduit is closed and drained.
func (r *Receiver[T]) TryRecv() (T, error) {
	v, err := r.c.TryRecv()
	if err != nil {
		if errors.Is(err, conduit.ErrClosed) && r.onClosed != nil {
			r.onClosed()
		}
		return v, err
	}
	if r.afterRecv != nil {
		r.afterRecv(v)
	}
	return v, nil
}

// Close tears the channel down from the receiving side. Senders see
// conduit.ErrClosed on their next operation. Close is idempotent.
func (r *Receiver[T]) Close() error {
	if r.closeFn != nil {
		return r.closeFn()
	}
	return r.c.Close()
}
