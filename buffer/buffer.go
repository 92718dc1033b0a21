// Package buffer contains the in-memory containers that caches are built from.
package buffer

import "iter"

// Buffer is an in-memory container of items.
//
// Implementations are not considered thread-safe. Caches guard them with their own locks.
type Buffer[Item any] interface {
	// Push adds an item to the buffer.
	Push(item Item)
	// Size returns the number of items in the buffer.
	Size() int
	// Iter returns a sequence of all items in the buffer, oldest first.
	Iter() iter.Seq[Item]
	// Reset clears all items from the buffer.
	Reset()
	// Derive returns a new empty buffer instance with the same settings.
	Derive() Buffer[Item]
}
