package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// UserLimiter provides per-user rate limiting using token buckets.
// Each user gets a separate limiter, so one busy caller cannot exhaust
// the budget of another.
type UserLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewUserLimiter creates a UserLimiter allowing rps requests per second per
// user with the given burst.
func NewUserLimiter(rps float64, burst int) *UserLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether a request by user may proceed now.
func (l *UserLimiter) Allow(user string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[user]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[user] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
