package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
)

// Lines returns a source yielding the lines of r without their line endings. If r is an
// [io.Closer], closing the source closes r.
func Lines(r io.Reader) *Seq[string] {
	s := New(func(ctx context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				if err := ctx.Err(); err != nil {
					yield("", err)
					return
				}
				if !yield(scanner.Text(), nil) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				yield("", fmt.Errorf("scan line: %w", err))
			}
		}
	})

	if c, ok := r.(io.Closer); ok {
		s.OnClose(c.Close)
	}

	return s
}
