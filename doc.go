// Package seqbuf decouples a slow or resource-bound sequence from the code consuming it.
//
// A [Pipe] drains a [Source] in a background goroutine into a FIFO [Cache] and hands the cached
// items out again as a lazy sequence. The producer starts on the first demand for an item and
// runs until the source is exhausted, fails or the pipe is closed. The consumer blocks only
// while the cache is empty and the producer has not finished.
//
//	p, err := seqbuf.New(source.FromSeq(slowItems), func(c *seqbuf.Config[Item]) {
//		c.Capacity(64)
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	for item := range p.Iter() {
//		// ...
//	}
//	if err := p.Err(); err != nil {
//		return err
//	}
//
// Items are delivered in the order the source produced them and each item is delivered once,
// even when several goroutines consume the same pipe. If the source fails, the items produced
// before the failure are delivered first, and the failure is returned by the first call that
// finds the cache drained.
//
// The caches live in the [github.com/teenjuna/seqbuf/cache] package and the common sources in
// [github.com/teenjuna/seqbuf/source].
package seqbuf
