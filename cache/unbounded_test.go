package cache_test

import (
	"strconv"
	"testing"

	"github.com/teenjuna/seqbuf"
	"github.com/teenjuna/seqbuf/cache"
	"github.com/teenjuna/seqbuf/internal/testing/require"
)

var (
	_ seqbuf.Cache[any] = (*cache.Unbounded[any])(nil)
	_ seqbuf.Cache[any] = (*cache.Bounded[any])(nil)
	_ seqbuf.Cache[any] = (*cache.Spill[any])(nil)

	_ cache.Notifier = (*cache.Unbounded[any])(nil)
	_ cache.Notifier = (*cache.Bounded[any])(nil)
	_ cache.Notifier = (*cache.Spill[any])(nil)
)

type Item struct {
	ID string
	N  int
}

func items(n int) []Item {
	out := make([]Item, 0, n)
	for i := range n {
		out = append(out, Item{ID: strconv.Itoa(i), N: i})
	}
	return out
}

func drain(t *testing.T, c seqbuf.Cache[Item]) []Item {
	t.Helper()
	var out []Item
	for {
		item, ok, err := c.Pop()
		require.Nil(t, err)
		if !ok {
			return out
		}
		out = append(out, item)
	}
}

func TestUnbounded(t *testing.T) {
	c := cache.NewUnbounded[Item]()
	require.Equal(t, c.Empty(), true)

	var pushes int
	c.OnPush(func() { pushes++ })

	input := items(5000)
	for i, item := range input {
		require.Nil(t, c.Push(t.Context(), item))
		require.Equal(t, c.Size(), i+1)
	}
	require.Equal(t, pushes, len(input))
	require.Equal(t, c.Empty(), false)

	require.Equal(t, drain(t, c), input)
	require.Equal(t, c.Empty(), true)
}
