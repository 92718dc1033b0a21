package seqbuf

import (
	"errors"
	"iter"

	"github.com/teenjuna/seqbuf/source"
)

// Buffered returns a sequence yielding the items of seq through a new pipe. The pipe is
// closed when the range loop over the returned sequence ends, early exits included.
//
// If seq panics, the panic is recovered by the producer and raised again, as an error, in the
// goroutine ranging over the returned sequence. The returned sequence can be ranged over once.
func Buffered[Item any](
	seq iter.Seq[Item],
	configFuncs ...func(*Config[Item]),
) (iter.Seq[Item], error) {
	pipe, err := New(source.FromSeq(seq), configFuncs...)
	if err != nil {
		return nil, err
	}

	return func(yield func(Item) bool) {
		defer func() {
			if err := pipe.Close(); err != nil && !errors.Is(err, ErrClosed) {
				panic(err)
			}
		}()

		for item := range pipe.Iter() {
			if !yield(item) {
				return
			}
		}
	}, nil
}
