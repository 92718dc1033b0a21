package msgp

import (
	"iter"

	"github.com/tinylib/msgp/msgp"

	"github.com/teenjuna/seqbuf/codec"
)

// Codec stores a batch as concatenated MessagePack values. Item must have msgp generated (or
// hand written) methods on its pointer type.
type Codec[Item any, ItemPtr msgpable[Item]] struct {
	buf []byte
}

var _ codec.Codec[msgp.Raw] = (*Codec[msgp.Raw, *msgp.Raw])(nil)

func New[Item any, ItemPtr msgpable[Item]]() *Codec[Item, ItemPtr] {
	return &Codec[Item, ItemPtr]{
		buf: make([]byte, 0),
	}
}

func (c *Codec[Item, ItemPtr]) Encode(batch iter.Seq[Item]) ([]byte, error) {
	c.buf = c.buf[:0]
	for item := range batch {
		b, err := ItemPtr(&item).MarshalMsg(c.buf)
		if err != nil {
			return nil, err
		}
		c.buf = b
	}

	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out, nil
}

func (c *Codec[Item, ItemPtr]) Decode(data []byte, push func(Item)) error {
	for len(data) > 0 {
		var item Item
		rest, err := ItemPtr(&item).UnmarshalMsg(data)
		if err != nil {
			return err
		}
		data = rest
		push(item)
	}

	return nil
}

func (c *Codec[Item, ItemPtr]) Derive() codec.Codec[Item] {
	return New[Item, ItemPtr]()
}

type msgpable[Item any] interface {
	*Item
	msgp.Encodable
	msgp.Decodable
	msgp.Marshaler
	msgp.Unmarshaler
}
