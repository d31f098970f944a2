package guardrail

import (
	"sync"
	"time"
)

const (
	// DefaultRateLimit is the number of requests allowed per window per client.
	DefaultRateLimit = 10
	// DefaultRateWindow is the sliding window size.
	DefaultRateWindow = 60 * time.Second
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed      bool
	CurrentCount int
	// RetryAfter is how long until the oldest hit leaves the window; zero
	// when the request was allowed. Never exceeds the window size.
	RetryAfter time.Duration
}

// RateLimiter is a per-key sliding-window counter. It is the only shared
// mutable state in the guardrail pipeline and must be safe for concurrent
// use; a single mutex around the hit map is sufficient since no call blocks.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		hits:   map[string][]time.Time{},
		now:    time.Now,
	}
}

// NewRateLimiterWithClock is used by tests that need a deterministic clock.
func NewRateLimiterWithClock(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	l := NewRateLimiter(limit, window)
	l.now = now
	return l
}

func (l *RateLimiter) Limit() int            { return l.limit }
func (l *RateLimiter) Window() time.Duration { return l.window }

// Allow records a hit for key if it is under the limit and reports the
// decision. Denied calls are not recorded, so a client that keeps retrying
// does not push its own recovery further away.
func (l *RateLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return Decision{
			Allowed:      false,
			CurrentCount: len(kept),
			RetryAfter:   kept[0].Sub(cutoff),
		}
	}

	l.hits[key] = append(kept, now)
	return Decision{Allowed: true, CurrentCount: len(kept) + 1}
}

// Prune drops keys whose hits have all aged out of the window. Called
// periodically so idle clients do not leak map entries.
func (l *RateLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, hits := range l.hits {
		stale := true
		for _, hit := range hits {
			if hit.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(l.hits, key)
		}
	}
}
