package conduit

import (
	"context"
	"sync"
)

// unboundedConduit is a growable FIFO queue. Sends append under a mutex and
// never block, so it has no meaningful capacity and does not implement
// CapacityReporter. Waiting receivers are woken by closing and replacing a
// notify channel, which broadcasts to every waiter at once.
type unboundedConduit[T any] struct {
	mu     sync.Mutex
	buf    []T
	notify chan struct{}
	closed bool
}

// NewUnbounded returns a conduit whose sends always succeed immediately.
func NewUnbounded[T any]() Conduit[T] {
	return &unboundedConduit[T]{notify: make(chan struct{})}
}

// Send appends v to the queue. It cannot block, so ctx is not consulted.
func (c *unboundedConduit[T]) Send(_ context.Context, v T) error {
	return c.TrySend(v)
}

func (c *unboundedConduit[T]) TrySend(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.buf = append(c.buf, v)
	c.signal()
	return nil
}

func (c *unboundedConduit[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		c.mu.Lock()
		if len(c.buf) > 0 {
			v := c.buf[0]
			c.buf = c.buf[1:]
			c.mu.Unlock()
			return v, nil
		}
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		ch := c.notify
		c.mu.Unlock()

		select {
		case <-ch:
			// state changed; recheck
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (c *unboundedConduit[T]) TryRecv() (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.buf) > 0 {
		v := c.buf[0]
		c.buf = c.buf[1:]
		return v, nil
	}
	if c.closed {
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

func (c *unboundedConduit[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.signal()
	}
	return nil
}

// signal wakes all current waiters. Must be called with c.mu held.
func (c *unboundedConduit[T]) signal() {
	old := c.notify
	c.notify = make(chan struct{})
	close(old)
}
