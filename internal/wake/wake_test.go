package wake_test

import (
	"sync"
	"testing"
	"testing/synctest"

	"github.com/teenjuna/seqbuf/internal/testing/require"
	"github.com/teenjuna/seqbuf/internal/wake"
)

func TestNotifyWithoutWaiters(t *testing.T) {
	var b wake.Broadcast
	b.Notify()

	ch := b.Wait()
	select {
	case <-ch:
		t.Fatal("channel closed before notify")
	default:
	}
}

func TestNotifyWakesAllWaiters(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		const waiters = 10

		var (
			b     wake.Broadcast
			wg    sync.WaitGroup
			woken = make(chan struct{}, waiters)
		)
		for range waiters {
			ch := b.Wait()
			wg.Go(func() {
				<-ch
				woken <- struct{}{}
			})
		}

		synctest.Wait()
		require.Equal(t, len(woken), 0)

		b.Notify()
		wg.Wait()
		require.Equal(t, len(woken), waiters)
	})
}

func TestWaitAfterNotifyIsFresh(t *testing.T) {
	var b wake.Broadcast
	first := b.Wait()
	b.Notify()
	second := b.Wait()

	<-first
	select {
	case <-second:
		t.Fatal("second channel closed by previous notify")
	default:
	}
}
