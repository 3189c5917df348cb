// Package ratelimit provides the throttling policy used between upstream
// calls during a reconciliation pass. The policy is an explicit object so
// it stays testable and swappable, instead of an inline sleep.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer paces a sequence of upstream calls.
type Pacer interface {
	// Wait blocks until the next call is allowed or the context ends.
	Wait(ctx context.Context) error
}

// TokenBucket is a Pacer over a token bucket: one token per interval with
// a single-token burst, which degenerates to a fixed delay between calls.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a pacer allowing one call per interval. A zero or
// negative interval disables pacing.
func NewTokenBucket(interval time.Duration) *TokenBucket {
	if interval <= 0 {
		return &TokenBucket{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or the context ends.
func (p *TokenBucket) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Unpaced is a Pacer that never waits, for tests and single-shot calls.
type Unpaced struct{}

// Wait returns immediately.
func (Unpaced) Wait(ctx context.Context) error {
	return ctx.Err()
}
