// Package cache contains the FIFO caches a pipe hands items over with.
//
// [Unbounded] never blocks a push. [Bounded] blocks a push until the cache holds fewer items
// than its capacity; with capacity 0 every push waits until its item is popped. [Spill] keeps a
// bounded amount of items in memory and moves the rest to SQLite.
//
// All caches are safe for concurrent use and pop items in the order they were pushed.
package cache

import (
	"errors"
)

// DefaultCapacity is the capacity of a bounded cache when nothing else is specified.
const DefaultCapacity = 1024

var (
	// ErrInvalidCapacity is returned when a bounded cache is created with a negative capacity.
	ErrInvalidCapacity = errors.New("capacity can't be < 0")
	// ErrClosed is returned by a spill cache that has been closed.
	ErrClosed = errors.New("cache is closed")
)

// Notifier is implemented by caches that report pushes themselves.
//
// A push into a rendezvous cache only returns after its item was popped, so whoever waits for
// items has to learn about it while the push is still blocked.
type Notifier interface {
	// OnPush registers fn to be called every time an item becomes available for Pop. It must be
	// called before the cache is used.
	OnPush(fn func())
}

type notifier struct {
	fn func()
}

func (n *notifier) OnPush(fn func()) {
	n.fn = fn
}

func (n *notifier) notify() {
	if n.fn != nil {
		n.fn()
	}
}
