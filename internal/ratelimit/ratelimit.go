// Package ratelimit provides token-bucket admission control for outbound model calls.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/metrics"
)

// DefaultTokensPerSecond is the rate used when none is configured.
const DefaultTokensPerSecond = 10

// RateLimiter delays callers so that at most tokensPerSecond requests proceed
// per second, with bursts up to the bucket capacity. The bucket starts full.
type RateLimiter struct {
	limiter  *rate.Limiter
	interval time.Duration
	burst    int
}

// New creates a limiter refilling tokensPerSecond tokens each second.
// The bucket holds tokensPerSecond tokens (at least one).
func New(tokensPerSecond float64) (*RateLimiter, error) {
	if tokensPerSecond <= 0 || math.IsNaN(tokensPerSecond) || math.IsInf(tokensPerSecond, 0) {
		return nil, fmt.Errorf("%w: tokens per second must be positive, got %v",
			domain.ErrInvalidConfig, tokensPerSecond)
	}

	burst := int(math.Ceil(tokensPerSecond))
	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(tokensPerSecond), burst),
		interval: time.Duration(float64(time.Second) / tokensPerSecond),
		burst:    burst,
	}, nil
}

// Wait blocks until a token is available and consumes it.
// It only returns an error when ctx is done first.
func (r *RateLimiter) Wait(ctx context.Context) error {
	start := time.Now()
	err := r.limiter.Wait(ctx)
	metrics.ObserveRateLimitWait(time.Since(start))
	return err
}

// Allow consumes a token if one is available without blocking.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// Tokens returns the current token balance.
func (r *RateLimiter) Tokens() float64 {
	return r.limiter.Tokens()
}

// Interval returns the time it takes to refill a single token.
func (r *RateLimiter) Interval() time.Duration {
	return r.interval
}

// Burst returns the bucket capacity.
func (r *RateLimiter) Burst() int {
	return r.burst
}
