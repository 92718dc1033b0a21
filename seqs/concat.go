// Package seqs contains helpers for building the sequences that are fed into a pipe.
package seqs

import "iter"

// Concat returns a sequence yielding the items of every seq in turn. With no sequences it
// yields nothing; with one it returns that sequence.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	switch len(seqs) {
	case 0:
		return func(func(T) bool) {}
	case 1:
		return seqs[0]
	}

	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for item := range seq {
				if !yield(item) {
					return
				}
			}
		}
	}
}
