package conduit

import (
	"context"
	"sync"
)

// oneshotConduit carries exactly one value. The first Send stores it and
// permanently rejects further sends; the first successful Recv consumes it.
// A value sent before Close survives the close and is still delivered.
type oneshotConduit[T any] struct {
	mu     sync.Mutex
	val    T
	full   bool
	sent   bool
	closed bool
	notify chan struct{}
}

// NewOneshot returns a single-value conduit with capacity 1.
func NewOneshot[T any]() Conduit[T] {
	return &oneshotConduit[T]{notify: make(chan struct{})}
}

// Send stores the value. It cannot block, so ctx is not consulted.
func (c *oneshotConduit[T]) Send(_ context.Context, v T) error {
	return c.TrySend(v)
}

func (c *oneshotConduit[T]) TrySend(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.sent {
		return ErrClosed
	}
	c.val = v
	c.full = true
	c.sent = true
	c.signal()
	return nil
}

func (c *oneshotConduit[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		c.mu.Lock()
		if c.full {
			v := c.val
			c.val = zero
			c.full = false
			c.mu.Unlock()
			return v, nil
		}
		if c.closed || c.sent {
			// Consumed or abandoned; nothing will ever arrive.
			c.mu.Unlock()
			return zero, ErrClosed
		}
		ch := c.notify
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (c *oneshotConduit[T]) TryRecv() (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		v := c.val
		c.val = zero
		c.full = false
		return v, nil
	}
	if c.closed || c.sent {
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

func (c *oneshotConduit[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.signal()
	}
	return nil
}

func (c *oneshotConduit[T]) Capacity() int {
	return 1
}

// signal wakes all current waiters. Must be called with c.mu held.
func (c *oneshotConduit[T]) signal() {
	old := c.notify
	c.notify = make(chan struct{})
	close(old)
}
