// Package ratelimit implements fixed-window request limits over a pluggable
// counter store.
package ratelimit

import (
	"context"
	"time"
)

// Counter records a hit on key within a fixed window and reports the count
// so far together with the moment the window ends.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Result describes one limiter decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter applies one named limit. Limiters sharing a Counter keep separate
// windows because keys are prefixed with the limiter name.
type Limiter struct {
	name    string
	max     int
	window  time.Duration
	counter Counter
}

func NewLimiter(name string, max int, window time.Duration, counter Counter) *Limiter {
	return &Limiter{name: name, max: max, window: window, counter: counter}
}

func (l *Limiter) Name() string { return l.name }

func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.counter.Hit(ctx, l.name+":"+key, l.window)
	if err != nil {
		return Result{Allowed: true, Limit: l.max, Remaining: l.max}, err
	}

	remaining := l.max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(l.max),
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
