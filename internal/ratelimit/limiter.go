// Package ratelimit throttles outbound API calls so the cover lookup and
// chat clients stay inside their providers' request quotas.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter is a named token-bucket limiter. The name identifies the
// upstream service in error messages and logs.
type Limiter struct {
	name    string
	limiter *rate.Limiter
}

// New creates a limiter that admits requestsPerSecond sustained requests,
// with a burst of the same size.
func New(name string, requestsPerSecond int) *Limiter {
	return &Limiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Wait blocks until a token is available or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a request can proceed right now. Prefer Wait on
// request paths.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Name returns the upstream service name.
func (l *Limiter) Name() string {
	return l.name
}
