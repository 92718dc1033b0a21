package retry

import (
	"context"
	"time"
)

var _ Policy = (*FixedPolicy)(nil)

// FixedPolicy waits the same interval between attempts.
type FixedPolicy struct {
	attempts
	interval time.Duration
	jitter   float64
}

// Fixed returns a policy making at most attempts attempts (0 means unlimited) spaced by interval.
func Fixed(attempts int, interval time.Duration) *FixedPolicy {
	validateAttempts(attempts)
	if interval < 0 {
		panic("interval can't be < 0")
	}
	p := FixedPolicy{interval: interval, jitter: 0.1}
	p.limit = attempts
	return &p
}

func (r *FixedPolicy) WithJitter(jitter float64) *FixedPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *FixedPolicy) Attempt(ctx context.Context) bool {
	if ctx.Err() != nil || r.exhausted() {
		return false
	}
	if r.made > 0 && !wait(ctx, r.interval, r.jitter) {
		return false
	}
	r.made++
	return true
}

func (r *FixedPolicy) Derive() Policy {
	return Fixed(r.limit, r.interval).WithJitter(r.jitter)
}
