package seqs

import "iter"

// Cascading returns a sequence starting at start and following next, like walking a chain of
// parents. It ends when the current value is the zero value, when next reports false, or when
// next returns the value it was given.
func Cascading[T comparable](start T, next func(T) (T, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		var zero T
		for current := start; current != zero; {
			if !yield(current) {
				return
			}
			following, ok := next(current)
			if !ok || following == current {
				return
			}
			current = following
		}
	}
}
