package seqbuf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/seqbuf/cache"
	"github.com/teenjuna/seqbuf/internal/wake"
)

// Pipe drains a source into a cache in a background goroutine and hands the cached items out
// in order.
//
// All methods are safe for concurrent use. A pipe that is not drained keeps its producer
// running until [Pipe.Close] is called.
type Pipe[Item any] struct {
	source  Source[Item]
	cache   Cache[Item]
	logger  zerolog.Logger
	metrics *metrics

	lifecycle sync.Mutex
	started   atomic.Bool
	closed    atomic.Bool
	done      atomic.Bool
	wake      wake.Broadcast

	failureMu sync.Mutex
	failure   error

	produceCtx   context.Context
	produceStop  func()
	produceGroup *errgroup.Group
}

// New creates a pipe draining src. Nothing is pulled from src until an item is asked for.
//
// Default configuration:
//   - Cache: [cache.Unbounded]
//   - Logger: [zerolog.Nop]
//   - Prometheus: unregistered metrics
//
// New returns an error if the cache can't be created, for example because of a negative
// capacity. src is left untouched in that case.
func New[Item any](src Source[Item], configFuncs ...func(*Config[Item])) (*Pipe[Item], error) {
	if src == nil {
		panic("source can't be nil")
	}

	cfg := newConfig(configFuncs...)
	c, err := cfg.newCache()
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(ctx)

	pipe := Pipe[Item]{
		source:  src,
		cache:   c,
		logger:  cfg.logger.With().Str("component", "seqbuf").Logger(),
		metrics: cfg.prometheus.metrics(),

		produceCtx:   groupCtx,
		produceStop:  cancel,
		produceGroup: group,
	}

	// A rendezvous push only returns once its item is popped, so consumers have to be woken
	// by the cache itself.
	if n, ok := c.(cache.Notifier); ok {
		n.OnPush(pipe.wake.Notify)
	}

	return &pipe, nil
}

// HasNext reports whether an item is available, starting the producer if needed. It blocks
// while the cache is empty and the producer is running.
//
// Once the producer is done and the cache is drained, HasNext returns false together with
// the producer's failure, if any.
func (p *Pipe[Item]) HasNext(ctx context.Context) (bool, error) {
	return p.wait(ctx)
}

// Next returns the next item, starting the producer if needed. It blocks while the cache is
// empty and the producer is running.
//
// Once the producer is done and the cache is drained, Next returns the producer's failure, or
// [ErrExhausted] if there was none.
func (p *Pipe[Item]) Next(ctx context.Context) (Item, error) {
	var zero Item
	for {
		ok, err := p.wait(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			return zero, ErrExhausted
		}

		item, ok, err := p.cache.Pop()
		if err != nil {
			err = fmt.Errorf("pop cache: %w", err)
			p.fail(err)
			return zero, err
		}
		if !ok {
			// Another consumer was faster.
			continue
		}

		p.metrics.itemsYielded.Inc()
		p.metrics.cachedItems.Dec()

		return item, nil
	}
}

// Iter returns the items of the pipe. The sequence ends when the pipe is exhausted or has
// failed; [Pipe.Err] tells the two apart.
func (p *Pipe[Item]) Iter() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for item, err := range p.Results(context.Background()) {
			if err != nil || !yield(item) {
				return
			}
		}
	}
}

// Results returns the items of the pipe. If the pipe fails, the last pair carries the
// failure.
func (p *Pipe[Item]) Results(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for {
			item, err := p.Next(ctx)
			if errors.Is(err, ErrExhausted) {
				return
			}
			if err != nil {
				yield(item, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Err returns the recorded failure of the pipe.
func (p *Pipe[Item]) Err() error {
	p.failureMu.Lock()
	defer p.failureMu.Unlock()
	return p.failure
}

// Len returns the number of items in the cache.
func (p *Pipe[Item]) Len() int {
	return p.cache.Size()
}

// Close stops the producer and waits for it to return, then releases the source and the
// cache. Items left in the cache are dropped.
//
// Close returns the recorded failure. The cancellation of a running producer is not a failure,
// but releasing the source still can be.
func (p *Pipe[Item]) Close() error {
	p.lifecycle.Lock()
	if p.closed.Swap(true) {
		p.lifecycle.Unlock()
		return ErrClosed
	}
	neverStarted := p.started.CompareAndSwap(false, true)
	p.lifecycle.Unlock()

	errs := make([]error, 0)

	if neverStarted {
		if err := p.source.Close(); err != nil {
			p.fail(fmt.Errorf("close source: %w", err))
		}
		p.done.Store(true)
		p.produceStop()
	} else {
		// Signal to the producer that it must stop.
		p.produceStop()
		_ = p.produceGroup.Wait()
	}
	p.wake.Notify()

	if err := p.Err(); err != nil {
		errs = append(errs, err)
	}

	if closer, ok := p.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (p *Pipe[Item]) start() {
	if p.started.Load() {
		return
	}

	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.closed.Load() || !p.started.CompareAndSwap(false, true) {
		return
	}
	p.produceGroup.Go(p.produce)
}

func (p *Pipe[Item]) produce() (err error) {
	var pulled int
	p.logger.Debug().Msg("producer started")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
		// Only Close cancels the producer's context.
		stopped := p.closed.Load() && errors.Is(err, context.Canceled)
		if stopped {
			err = nil
		}
		if closeErr := p.source.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close source: %w", closeErr))
		}

		switch {
		case err != nil:
			p.metrics.sourceErrors.Inc()
			p.logger.Error().Err(err).Int("items", pulled).Msg("producer failed")
		case stopped:
			p.logger.Debug().Int("items", pulled).Msg("producer stopped")
		default:
			p.logger.Debug().Int("items", pulled).Msg("producer finished")
		}

		if err != nil {
			p.fail(err)
		}
		p.done.Store(true)
		p.wake.Notify()
	}()

	for item, err := range p.source.All(p.produceCtx) {
		if err != nil {
			return fmt.Errorf("pull source: %w", err)
		}
		pulled++
		p.metrics.itemsPulled.Inc()

		// A rendezvous push returns after the pop, so count the item before pushing it.
		p.metrics.cachedItems.Inc()
		if err := p.cache.Push(p.produceCtx, item); err != nil {
			p.metrics.cachedItems.Dec()
			return fmt.Errorf("push cache: %w", err)
		}
		p.wake.Notify()
	}

	return nil
}

// wait blocks until the cache holds an item or the producer is done. It reports whether an
// item is available.
func (p *Pipe[Item]) wait(ctx context.Context) (bool, error) {
	p.start()

	var waitStart time.Time
	defer func() {
		if !waitStart.IsZero() {
			p.metrics.waitDuration.Observe(time.Since(waitStart).Seconds())
		}
	}()

	for {
		if p.closed.Load() {
			return false, ErrClosed
		}

		woken := p.wake.Wait()
		if !p.cache.Empty() {
			return true, nil
		}
		if p.done.Load() {
			// The last push happens before the flag is set.
			if !p.cache.Empty() {
				return true, nil
			}
			return false, p.Err()
		}

		if waitStart.IsZero() {
			waitStart = time.Now()
		}
		select {
		case <-woken:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func (p *Pipe[Item]) fail(err error) {
	p.failureMu.Lock()
	defer p.failureMu.Unlock()
	if p.failure == nil {
		p.failure = err
	}
}
