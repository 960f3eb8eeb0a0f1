package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryClass buckets provider errors by how the retry loop treats them.
type retryClass int

const (
	retryNever  retryClass = iota // permanent, hand back immediately
	retryOnce                     // one extra attempt, then give up
	retryAlways                   // transient, retry until attempts run out
)

// classifyRetry decides whether an error is worth another attempt.
func classifyRetry(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}

	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		// Truncation repeats identically until MaxTokens changes.
		return retryNever
	}

	var unusable *ErrInvalidResponse
	if errors.As(err, &unusable) {
		// A malformed payload is usually a one-off sampling accident.
		return retryOnce
	}

	// Rate limits, 5xx, and transport faults are transient.
	return retryAlways
}

// RetryProvider re-attempts transient failures with exponential backoff
// and jitter before the resolution chain gives up on a backend.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with the retry loop.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidBudget := 1

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classifyRetry(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if invalidBudget == 0 {
				return nil, err
			}
			invalidBudget--
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.waitBefore(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// waitBefore computes how long to sleep after the given failed attempt.
// A rate limit's RetryAfter wins over the computed backoff.
func (r *RetryProvider) waitBefore(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = min(wait, float64(r.cfg.MaxWait))

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
