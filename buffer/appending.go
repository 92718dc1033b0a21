package buffer

import (
	"iter"
	"slices"
)

var _ Buffer[any] = (*AppendingBuffer[any])(nil)

// AppendingBuffer collects items in a growing slice. It is the write side of a batch: items are
// appended until the batch is encoded as a whole and the buffer is reset.
type AppendingBuffer[Item any] struct {
	items []Item
}

func Appending[Item any]() *AppendingBuffer[Item] {
	return &AppendingBuffer[Item]{
		items: make([]Item, 0),
	}
}

func (b *AppendingBuffer[Item]) Push(item Item) {
	b.items = append(b.items, item)
}

func (b *AppendingBuffer[Item]) Size() int {
	return len(b.items)
}

func (b *AppendingBuffer[Item]) Iter() iter.Seq[Item] {
	return slices.Values(b.items)
}

func (b *AppendingBuffer[Item]) Reset() {
	clear(b.items)
	b.items = b.items[:0]
}

func (b *AppendingBuffer[Item]) Derive() Buffer[Item] {
	return Appending[Item]()
}
