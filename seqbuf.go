package seqbuf

import (
	"context"
	"errors"
	"iter"
)

var (
	// ErrClosed is returned by a pipe that has been closed.
	ErrClosed = errors.New("pipe is closed")
	// ErrExhausted is returned by [Pipe.Next] when no item is left and none will come.
	ErrExhausted = errors.New("pipe is exhausted")
)

// Source is a lazy sequence of items backed by a resource, such as a file or a database
// cursor.
type Source[Item any] interface {
	// All returns the items of the source. The sequence ends at the first non-nil error and
	// should end with the context's error once the context is done.
	All(ctx context.Context) iter.Seq2[Item, error]
	// Close releases the resource. A pipe calls it exactly once.
	Close() error
}

// Cache is a FIFO container shared by a pipe's producer and consumers. Implementations must be
// safe for concurrent use.
type Cache[Item any] interface {
	// Push adds an item. It may block until the cache has room, in which case it must return
	// the context's error once the context is done.
	Push(ctx context.Context, item Item) error
	// Pop removes the oldest item. It reports false if the cache is empty.
	Pop() (Item, bool, error)
	// Size returns the number of items in the cache.
	Size() int
	// Empty reports whether the cache holds no items.
	Empty() bool
}
