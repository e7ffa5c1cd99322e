package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles ledger mutations during bulk imports so a large
// batch cannot saturate the backing store. All workers share one limiter.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing opsPerSecond sustained mutations
// with the given burst
func NewLimiter(opsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(opsPerSecond), burst),
	}
}

// Wait blocks until a mutation is allowed or the context is cancelled
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a mutation is allowed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Burst returns the configured burst size
func (l *Limiter) Burst() int {
	return l.limiter.Burst()
}
