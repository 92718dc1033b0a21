package cache

import (
	"context"
	"sync"

	"github.com/teenjuna/seqbuf/buffer"
)

// Unbounded is a FIFO cache without a size limit.
type Unbounded[Item any] struct {
	notifier
	mu    sync.Mutex
	items *buffer.RingBuffer[Item]
}

// NewUnbounded returns an empty unbounded cache.
func NewUnbounded[Item any]() *Unbounded[Item] {
	return &Unbounded[Item]{
		items: buffer.Ring[Item](),
	}
}

// Push adds an item. It never blocks and never fails.
func (c *Unbounded[Item]) Push(_ context.Context, item Item) error {
	c.mu.Lock()
	c.items.Push(item)
	c.mu.Unlock()
	c.notify()
	return nil
}

// Pop removes the oldest item. It reports false if the cache is empty.
func (c *Unbounded[Item]) Pop() (Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items.Pop()
	return item, ok, nil
}

// Size returns the number of items in the cache.
func (c *Unbounded[Item]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Size()
}

// Empty reports whether the cache holds no items.
func (c *Unbounded[Item]) Empty() bool {
	return c.Size() == 0
}
