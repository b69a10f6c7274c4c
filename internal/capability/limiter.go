package capability

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-capability rate limiting, so a burst of events
// cannot flood any single downstream analysis capability.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. A non-positive rate disables
// limiting entirely.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the named capability may be invoked, or ctx ends.
func (l *Limiter) Wait(ctx context.Context, capability string) error {
	return l.getLimiter(capability).Wait(ctx)
}

// Allow checks whether an invocation is allowed without waiting.
func (l *Limiter) Allow(capability string) bool {
	return l.getLimiter(capability).Allow()
}

// getLimiter returns the rate limiter for a capability name.
func (l *Limiter) getLimiter(capability string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[capability]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[capability]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[capability] = limiter

	return limiter
}

// SetCapabilityRate sets a custom rate limit for one capability.
func (l *Limiter) SetCapabilityRate(capability string, perSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[capability] = rate.NewLimiter(rate.Limit(perSecond), burst)
}
