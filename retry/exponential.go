package retry

import (
	"context"
	"math"
	"time"
)

var _ Policy = (*ExponentialPolicy)(nil)

// ExponentialPolicy multiplies the interval by base after every attempt, up to maxInterval.
type ExponentialPolicy struct {
	attempts
	base        float64
	jitter      float64
	minInterval time.Duration
	maxInterval time.Duration
}

// Exponential returns a policy making at most attempts attempts (0 means unlimited). The first
// retry waits minInterval, later ones grow towards maxInterval.
func Exponential(attempts int, minInterval, maxInterval time.Duration) *ExponentialPolicy {
	validateAttempts(attempts)
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}
	p := ExponentialPolicy{
		base:        2,
		jitter:      0.1,
		minInterval: minInterval,
		maxInterval: maxInterval,
	}
	p.limit = attempts
	return &p
}

func (r *ExponentialPolicy) WithBase(base float64) *ExponentialPolicy {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	r.base = base
	return r
}

func (r *ExponentialPolicy) WithJitter(jitter float64) *ExponentialPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *ExponentialPolicy) Attempt(ctx context.Context) bool {
	if ctx.Err() != nil || r.exhausted() {
		return false
	}
	if r.made > 0 && !wait(ctx, r.interval(r.made), r.jitter) {
		return false
	}
	r.made++
	return true
}

// interval returns the wait before the attempt following made attempts.
func (r *ExponentialPolicy) interval(made int) time.Duration {
	d := float64(r.minInterval) * math.Pow(r.base, float64(made-1))
	if d >= float64(r.maxInterval) {
		return r.maxInterval
	}
	return time.Duration(d)
}

func (r *ExponentialPolicy) Derive() Policy {
	return Exponential(r.limit, r.minInterval, r.maxInterval).
		WithBase(r.base).
		WithJitter(r.jitter)
}
