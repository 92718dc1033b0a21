// Package codec contains the [Codec] interface used by the spill cache to store batches of
// items, with implementations inside subpackages.
package codec

import "iter"

// Codec encodes and decodes batches of items.
//
// Implementations are not considered thread-safe. The spill cache calls them under its lock.
type Codec[Item any] interface {
	// Encode serializes a sequence of items into a byte slice. The returned slice is owned by
	// the caller.
	Encode(batch iter.Seq[Item]) ([]byte, error)
	// Decode deserializes a byte slice into items, passing each to push in encoding order.
	Decode(data []byte, push func(Item)) error
	// Derive returns a new Codec instance with the same settings.
	Derive() Codec[Item]
}
