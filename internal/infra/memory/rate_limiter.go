package memory

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter keyed by client.
type RateLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter allows limit requests per key in each window (e.g. 10 per minute).
func NewRateLimiter(limit int, every time.Duration) *RateLimiter {
	return NewRateLimiterWithClock(limit, every, time.Now)
}

func NewRateLimiterWithClock(limit int, every time.Duration, clock func() time.Time) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  every,
		clock:   clock,
		windows: make(map[string]*window),
	}
}

func (l *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.windows[key] = w
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// Cleanup drops windows that have already elapsed.
func (l *RateLimiter) Cleanup() {
	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
