// Package wake provides a broadcast primitive for goroutines that wait on a condition guarded
// elsewhere.
package wake

import "sync"

// Broadcast wakes every goroutine waiting on a channel returned by [Broadcast.Wait].
//
// A waiter must take the channel before checking its condition, and a notifier must call
// [Broadcast.Notify] after changing it. Following that order, no wakeup is missed. The zero
// value is ready to use.
type Broadcast struct {
	mu sync.Mutex
	ch chan struct{}
}

// Wait returns a channel that is closed by the next call to Notify.
func (b *Broadcast) Wait() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch == nil {
		b.ch = make(chan struct{})
	}
	return b.ch
}

// Notify wakes all current waiters.
func (b *Broadcast) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch != nil {
		close(b.ch)
		b.ch = nil
	}
}
