// Package source turns common producers of items into sources a pipe can drain.
//
// Every constructor returns a [*Seq]. Its All method is lazy: nothing is read until the
// returned sequence is ranged over. Close is safe to call more than once and always returns
// the result of the first call.
package source

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
)

// Seq is a source backed by a function producing a sequence of items.
type Seq[Item any] struct {
	all      func(ctx context.Context) iter.Seq2[Item, error]
	closers  []func() error
	closeErr error
	once     sync.Once
}

// New returns a source whose All method calls all.
func New[Item any](all func(ctx context.Context) iter.Seq2[Item, error]) *Seq[Item] {
	if all == nil {
		panic("all can't be nil")
	}
	return &Seq[Item]{all: all}
}

// All returns the items of the source. A non-nil error ends the sequence.
func (s *Seq[Item]) All(ctx context.Context) iter.Seq2[Item, error] {
	return s.all(ctx)
}

// OnClose registers fn to be called by Close. Functions run in reverse order of
// registration.
func (s *Seq[Item]) OnClose(fn func() error) *Seq[Item] {
	if fn == nil {
		panic("fn can't be nil")
	}
	s.closers = append(s.closers, fn)
	return s
}

// Close calls the functions registered by OnClose once and joins their errors.
func (s *Seq[Item]) Close() error {
	s.once.Do(func() {
		errs := make([]error, 0)
		for _, fn := range slices.Backward(s.closers) {
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// FromSlice returns a source yielding the items of a slice.
func FromSlice[Item any](items []Item) *Seq[Item] {
	return FromSeq(slices.Values(items))
}

// FromSeq returns a source yielding the items of seq. The sequence stops with the context's
// error once the context is done.
func FromSeq[Item any](seq iter.Seq[Item]) *Seq[Item] {
	return New(func(ctx context.Context) iter.Seq2[Item, error] {
		return func(yield func(Item, error) bool) {
			for item := range seq {
				if err := ctx.Err(); err != nil {
					var zero Item
					yield(zero, err)
					return
				}
				if !yield(item, nil) {
					return
				}
			}
		}
	})
}

// FromSeq2 returns a source yielding the pairs of seq. The first non-nil error ends it.
func FromSeq2[Item any](seq iter.Seq2[Item, error]) *Seq[Item] {
	return New(func(ctx context.Context) iter.Seq2[Item, error] {
		return func(yield func(Item, error) bool) {
			for item, err := range seq {
				if err == nil {
					err = ctx.Err()
				}
				if err != nil {
					var zero Item
					yield(zero, err)
					return
				}
				if !yield(item, nil) {
					return
				}
			}
		}
	})
}

// FromChan returns a source yielding the items received from ch until it is closed.
func FromChan[Item any](ch <-chan Item) *Seq[Item] {
	return New(func(ctx context.Context) iter.Seq2[Item, error] {
		return func(yield func(Item, error) bool) {
			for {
				select {
				case <-ctx.Done():
					var zero Item
					yield(zero, ctx.Err())
					return
				case item, ok := <-ch:
					if !ok || !yield(item, nil) {
						return
					}
				}
			}
		}
	})
}

// FromFunc returns a source that calls next until it reports no more items or fails.
func FromFunc[Item any](next func(ctx context.Context) (Item, bool, error)) *Seq[Item] {
	return New(func(ctx context.Context) iter.Seq2[Item, error] {
		return func(yield func(Item, error) bool) {
			for {
				item, ok, err := next(ctx)
				if err != nil {
					yield(item, err)
					return
				}
				if !ok || !yield(item, nil) {
					return
				}
			}
		}
	})
}
