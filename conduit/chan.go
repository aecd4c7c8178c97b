package conduit

import (
	"context"
	"sync"
)

// chanConduit adapts a buffered Go channel. The raw channel itself is never
// closed; a separate done channel carries the closed state so concurrent
// senders cannot trip a send-on-closed-channel panic.
type chanConduit[T any] struct {
	ch   chan T
	done chan struct{}
	once sync.Once
}

// NewBounded returns a conduit backed by a fresh buffered channel of the
// given capacity. Capacity must be at least 1.
func NewBounded[T any](capacity int) Conduit[T] {
	if capacity < 1 {
		capacity = 1
	}
	return NewChan(make(chan T, capacity))
}

// NewChan adapts an existing buffered channel. The conduit takes ownership:
// mixing direct channel operations with conduit operations is undefined.
func NewChan[T any](ch chan T) Conduit[T] {
	return &chanConduit[T]{ch: ch, done: make(chan struct{})}
}

func (c *chanConduit[T]) Send(ctx context.Context, v T) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.ch <- v:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *chanConduit[T]) TrySend(v T) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.ch <- v:
		return nil
	default:
		return ErrFull
	}
}

func (c *chanConduit[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case v := <-c.ch:
		return v, nil
	default:
	}
	select {
	case v := <-c.ch:
		return v, nil
	case <-c.done:
		// Drain values that raced with close before reporting it.
		select {
		case v := <-c.ch:
			return v, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *chanConduit[T]) TryRecv() (T, error) {
	var zero T
	select {
	case v := <-c.ch:
		return v, nil
	default:
	}
	select {
	case <-c.done:
		return zero, ErrClosed
	default:
		return zero, ErrEmpty
	}
}

func (c *chanConduit[T]) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *chanConduit[T]) Capacity() int {
	return cap(c.ch)
}
