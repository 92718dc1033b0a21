package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/teenjuna/seqbuf/buffer"
	"github.com/teenjuna/seqbuf/internal/wake"
)

// Bounded is a FIFO cache that holds at most capacity items.
//
// A push waits for a free slot. Slots are handed out by a weighted semaphore, so the size never
// exceeds the capacity, and blocked pushers are served in the order they arrived.
//
// Capacity 0 is rendezvous mode: a push inserts its item and waits until that item is popped.
// While it waits the cache holds one item per blocked pusher.
type Bounded[Item any] struct {
	notifier
	mu       sync.Mutex
	items    *buffer.RingBuffer[Item]
	capacity int
	slots    *semaphore.Weighted

	// Rendezvous bookkeeping.
	pushed uint64
	popped uint64
	pops   wake.Broadcast
}

// NewBounded returns a cache holding at most capacity items. It returns [ErrInvalidCapacity] if
// capacity is negative.
func NewBounded[Item any](capacity int) (*Bounded[Item], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	c := Bounded[Item]{
		items:    buffer.Ring[Item](),
		capacity: capacity,
	}
	if capacity > 0 {
		c.slots = semaphore.NewWeighted(int64(capacity))
	}

	return &c, nil
}

// Push adds an item once the cache has room for it. It returns the context's error if the
// context is done first, in which case the item was not added (or, in rendezvous mode, was not
// yet taken).
func (c *Bounded[Item]) Push(ctx context.Context, item Item) error {
	if c.slots == nil {
		return c.handoff(ctx, item)
	}

	if err := c.slots.Acquire(ctx, 1); err != nil {
		return err
	}

	c.mu.Lock()
	c.items.Push(item)
	c.mu.Unlock()
	c.notify()

	return nil
}

func (c *Bounded[Item]) handoff(ctx context.Context, item Item) error {
	c.mu.Lock()
	c.items.Push(item)
	ticket := c.pushed
	c.pushed++
	c.mu.Unlock()
	c.notify()

	for {
		popped := c.pops.Wait()

		c.mu.Lock()
		taken := c.popped > ticket
		c.mu.Unlock()
		if taken {
			return nil
		}

		select {
		case <-popped:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pop removes the oldest item and frees its slot. It reports false if the cache is empty.
func (c *Bounded[Item]) Pop() (Item, bool, error) {
	c.mu.Lock()
	item, ok := c.items.Pop()
	if ok {
		c.popped++
	}
	c.mu.Unlock()

	if ok {
		if c.slots != nil {
			c.slots.Release(1)
		} else {
			c.pops.Notify()
		}
	}

	return item, ok, nil
}

// Size returns the number of items in the cache.
func (c *Bounded[Item]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Size()
}

// Empty reports whether the cache holds no items.
func (c *Bounded[Item]) Empty() bool {
	return c.Size() == 0
}

// Capacity returns the maximum number of items the cache holds.
func (c *Bounded[Item]) Capacity() int {
	return c.capacity
}
