package seqbuf_test

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/teenjuna/seqbuf"
	"github.com/teenjuna/seqbuf/source"
)

func Example() {
	pipe, err := seqbuf.New(source.FromSlice([]string{"a", "b", "c"}), func(c *seqbuf.Config[string]) {
		c.Capacity(2)
	})
	if err != nil {
		panic(err)
	}
	defer pipe.Close()

	for item := range pipe.Iter() {
		fmt.Println(item)
	}
	fmt.Println(pipe.Err())

	// Output:
	// a
	// b
	// c
	// <nil>
}

func ExamplePipe_Next() {
	pipe, err := seqbuf.New(source.Lines(strings.NewReader("first\nsecond")))
	if err != nil {
		panic(err)
	}
	defer pipe.Close()

	ctx := context.Background()
	for {
		ok, err := pipe.HasNext(ctx)
		if err != nil {
			panic(err)
		}
		if !ok {
			break
		}
		line, err := pipe.Next(ctx)
		if err != nil {
			panic(err)
		}
		fmt.Println(line)
	}

	_, err = pipe.Next(ctx)
	fmt.Println(err)

	// Output:
	// first
	// second
	// pipe is exhausted
}

func ExampleBuffered() {
	seq, err := seqbuf.Buffered(slices.Values([]int{1, 2, 3, 4, 5, 6}))
	if err != nil {
		panic(err)
	}

	for n := range seq {
		if n > 3 {
			break
		}
		fmt.Println(n)
	}

	// Output:
	// 1
	// 2
	// 3
}
