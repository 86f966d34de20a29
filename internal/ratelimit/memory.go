package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter keeps windows in process memory. Expired windows are swept
// at most once per sweepEvery.
type MemoryCounter struct {
	mu         sync.Mutex
	windows    map[string]*window
	now        func() time.Time
	sweepEvery time.Duration
	nextSweep  time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return newMemoryCounter(time.Now)
}

func newMemoryCounter(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{
		windows:    make(map[string]*window),
		now:        now,
		sweepEvery: time.Minute,
	}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, d time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Len reports the number of tracked keys.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *MemoryCounter) sweep(now time.Time) {
	if now.Before(m.nextSweep) {
		return
	}
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
	m.nextSweep = now.Add(m.sweepEvery)
}
