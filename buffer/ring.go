package buffer

import "iter"

const minRingSize = 16

var _ Buffer[any] = (*RingBuffer[any])(nil)

// RingBuffer is a FIFO queue over a circular slice that doubles when it runs out of room.
// Popped slots are cleared so that the buffer does not keep references to consumed items.
type RingBuffer[Item any] struct {
	items []Item
	head  int
	size  int
}

func Ring[Item any]() *RingBuffer[Item] {
	return &RingBuffer[Item]{
		items: make([]Item, minRingSize),
	}
}

// Push adds an item at the tail.
func (b *RingBuffer[Item]) Push(item Item) {
	if b.size == len(b.items) {
		b.grow()
	}
	b.items[(b.head+b.size)%len(b.items)] = item
	b.size++
}

// Pop removes and returns the item at the head, the oldest one. It returns false if the buffer
// is empty.
func (b *RingBuffer[Item]) Pop() (Item, bool) {
	var zero Item
	if b.size == 0 {
		return zero, false
	}
	item := b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.size--
	if b.size == 0 {
		b.head = 0
	}
	return item, true
}

// Peek returns the oldest item without removing it.
func (b *RingBuffer[Item]) Peek() (Item, bool) {
	if b.size == 0 {
		var zero Item
		return zero, false
	}
	return b.items[b.head], true
}

func (b *RingBuffer[Item]) Size() int {
	return b.size
}

func (b *RingBuffer[Item]) Iter() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for i := range b.size {
			if !yield(b.items[(b.head+i)%len(b.items)]) {
				return
			}
		}
	}
}

func (b *RingBuffer[Item]) Reset() {
	clear(b.items)
	b.head = 0
	b.size = 0
}

func (b *RingBuffer[Item]) Derive() Buffer[Item] {
	return Ring[Item]()
}

func (b *RingBuffer[Item]) grow() {
	items := make([]Item, max(2*len(b.items), minRingSize))
	n := copy(items, b.items[b.head:])
	copy(items[n:], b.items[:b.head])
	b.items = items
	b.head = 0
}
