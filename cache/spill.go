package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teenjuna/seqbuf/buffer"
	"github.com/teenjuna/seqbuf/codec"
	"github.com/teenjuna/seqbuf/codec/json"
	"github.com/teenjuna/seqbuf/internal/sqlite"
	"github.com/teenjuna/seqbuf/retry"
)

// SpillConfig configures a [Spill] cache.
type SpillConfig[Item any] struct {
	file        string
	batchSize   int
	codec       codec.Codec[Item]
	retryPolicy retry.Policy
}

// File sets the SQLite database file. ":memory:" keeps spilled batches in memory, encoded.
// Whatever the file held before is discarded when the cache is created.
func (c *SpillConfig[Item]) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

// BatchSize sets how many items are encoded and stored together.
func (c *SpillConfig[Item]) BatchSize(size int) {
	if size < 1 {
		panic("batch size can't be < 1")
	}
	c.batchSize = size
}

// Codec sets the codec used to encode batches.
func (c *SpillConfig[Item]) Codec(codec codec.Codec[Item]) {
	if codec == nil {
		panic("codec can't be nil")
	}
	c.codec = codec
}

// RetryPolicy sets the policy for retrying failed batch writes.
func (c *SpillConfig[Item]) RetryPolicy(policy retry.Policy) {
	if policy == nil {
		panic("policy can't be nil")
	}
	c.retryPolicy = policy
}

// Spill is an unbounded FIFO cache that keeps at most two batches of items in memory.
//
// Pushed items collect in a tail batch. A full tail is encoded and stored in SQLite. Pops drain
// a head batch, which is refilled from the oldest stored batch, or from the tail once nothing is
// stored.
type Spill[Item any] struct {
	notifier
	cfg     *SpillConfig[Item]
	storage *sqlite.Storage

	mu     sync.Mutex
	codec  codec.Codec[Item]
	head   *buffer.RingBuffer[Item]
	tail   *buffer.AppendingBuffer[Item]
	stored int
	closed bool
}

// NewSpill creates a spill cache.
//
// Default configuration:
//   - File: ":memory:"
//   - BatchSize: 256
//   - Codec: JSON
//   - RetryPolicy: 3 attempts, 10ms apart
func NewSpill[Item any](configFuncs ...func(c *SpillConfig[Item])) (*Spill[Item], error) {
	cfg := &SpillConfig[Item]{}
	cfg.File(":memory:")
	cfg.BatchSize(256)
	cfg.Codec(json.New[Item]())
	cfg.RetryPolicy(retry.Fixed(3, 10*time.Millisecond))
	for _, cf := range configFuncs {
		if cf != nil {
			cf(cfg)
		}
	}

	storage, err := sqlite.New(func(c *sqlite.Config) {
		c.File(cfg.file)
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	c := Spill[Item]{
		cfg:     cfg,
		storage: storage,
		codec:   cfg.codec.Derive(),
		head:    buffer.Ring[Item](),
		tail:    buffer.Appending[Item](),
	}

	return &c, nil
}

// Push adds an item, storing the tail batch once it is full. If storing fails the items stay in
// the tail and the next push tries again.
func (c *Spill[Item]) Push(ctx context.Context, item Item) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	c.tail.Push(item)
	var err error
	if c.tail.Size() >= c.cfg.batchSize {
		err = c.flush(ctx)
	}
	c.mu.Unlock()

	c.notify()

	return err
}

func (c *Spill[Item]) flush(ctx context.Context) error {
	size := c.tail.Size()
	data, err := c.codec.Encode(c.tail.Iter())
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	policy := c.cfg.retryPolicy.Derive()
	for policy.Attempt(ctx) {
		if _, err = c.storage.Push(data, size); err == nil {
			c.stored += size
			c.tail.Reset()
			return nil
		}
		if errors.Is(err, sqlite.ErrClosed) {
			break
		}
	}
	if err == nil {
		err = ctx.Err()
	}

	return fmt.Errorf("store batch: %w", err)
}

// Pop removes the oldest item, loading the next batch when the head is drained. It reports
// false if the cache is empty and returns [ErrClosed] after Close.
func (c *Spill[Item]) Pop() (Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero Item
	if c.closed {
		return zero, false, ErrClosed
	}

	if c.head.Size() == 0 {
		if err := c.refill(); err != nil {
			return zero, false, err
		}
	}

	item, ok := c.head.Pop()
	return item, ok, nil
}

func (c *Spill[Item]) refill() error {
	if c.stored > 0 {
		batch, err := c.storage.Shift()
		if err != nil {
			return fmt.Errorf("shift batch: %w", err)
		}
		if batch != nil {
			c.stored -= batch.Size
			if err := c.codec.Decode(batch.Data, c.head.Push); err != nil {
				return fmt.Errorf("decode batch %d: %w", batch.ID, err)
			}
			return nil
		}
	}

	for item := range c.tail.Iter() {
		c.head.Push(item)
	}
	c.tail.Reset()

	return nil
}

// Size returns the number of items in the cache, stored ones included.
func (c *Spill[Item]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head.Size() + c.stored + c.tail.Size()
}

// Empty reports whether the cache holds no items.
func (c *Spill[Item]) Empty() bool {
	return c.Size() == 0
}

// Stored returns the number of items that currently live in SQLite.
func (c *Spill[Item]) Stored() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stored
}

// Close releases the database. Items still in the cache are dropped.
func (c *Spill[Item]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true

	c.head.Reset()
	c.tail.Reset()
	c.stored = 0

	return c.storage.Close()
}
