package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// attempts counts attempts against a limit. A limit of 0 means no limit.
type attempts struct {
	made  int
	limit int
}

func (a *attempts) exhausted() bool {
	return a.limit != 0 && a.made >= a.limit
}

func validateAttempts(limit int) {
	if limit < 0 {
		panic("attempts can't be < 0")
	}
}

func validateJitter(jitter float64) {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
}

// wait sleeps for interval, randomly stretched or shrunk by up to jitter of it. It returns false
// if the context is done first.
func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	m := (rand.Float64() * 2) - 1
	d := interval + time.Duration(m*jitter*float64(interval))

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
