// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures the retry helper wrapped around every network
// operation a backend performs.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts including the first.
	// Default: 4.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry. Default: 500ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between retries. Default: 30s.
	MaxBackoff time.Duration

	// Multiplier grows the backoff after each retry. Default: 2.0.
	Multiplier float64

	// Jitter adds randomness to each delay to avoid thundering herds.
	// 0.2 means ±20%. Default: 0.2.
	Jitter float64

	// RetryIf decides whether an error is worth another attempt.
	// Defaults to [IsRetryable].
	RetryIf func(error) bool
}

// DefaultRetryConfig returns the retry settings shared by all backends.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    4,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.2,
		RetryIf:        IsRetryable,
	}
}

// Retryer performs operations with exponential backoff on retryable
// failures.
type Retryer struct {
	config RetryConfig
}

// NewRetryer creates a retryer, filling zero config fields with defaults.
func NewRetryer(config RetryConfig) *Retryer {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 4
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = 500 * time.Millisecond
	}
	if config.MaxBackoff <= 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.Jitter < 0 || config.Jitter > 1 {
		config.Jitter = 0.2
	}
	if config.RetryIf == nil {
		config.RetryIf = IsRetryable
	}
	return &Retryer{config: config}
}

// Do executes op, retrying retryable failures with growing backoff. It
// returns the last error when all attempts are exhausted, the first
// non-retryable error immediately, or ctx.Err() if the context is cancelled
// while waiting between attempts.
func (r *Retryer) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !r.config.RetryIf(lastErr) {
			return lastErr
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.addJitter(r.BackoffFor(attempt))):
		}
	}

	return lastErr
}

// DoBytes is [Retryer.Do] for operations producing a byte payload.
func (r *Retryer) DoBytes(ctx context.Context, op func() ([]byte, error)) ([]byte, error) {
	var out []byte
	err := r.Do(ctx, func() error {
		var opErr error
		out, opErr = op()
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BackoffFor returns the base delay (without jitter) applied after the
// given 1-based attempt. The sequence is non-decreasing and capped at
// MaxBackoff.
func (r *Retryer) BackoffFor(attempt int) time.Duration {
	if attempt <= 0 {
		return r.config.InitialBackoff
	}
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if backoff > float64(r.config.MaxBackoff) {
		return r.config.MaxBackoff
	}
	return time.Duration(backoff)
}

func (r *Retryer) addJitter(d time.Duration) time.Duration {
	if r.config.Jitter == 0 {
		return d
	}
	jitterRange := float64(d) * r.config.Jitter
	jitter := (rand.Float64()*2 - 1) * jitterRange
	return time.Duration(float64(d) + jitter)
}
