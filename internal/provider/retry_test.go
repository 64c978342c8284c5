// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffForGrowsAndCaps(t *testing.T) {
	r := NewRetryer(RetryConfig{
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	})

	assert.Equal(t, 500*time.Millisecond, r.BackoffFor(1))
	assert.Equal(t, time.Second, r.BackoffFor(2))
	assert.Equal(t, 2*time.Second, r.BackoffFor(3))
	assert.Equal(t, 4*time.Second, r.BackoffFor(4))

	// Far past the cap the delay must stay at MaxBackoff.
	assert.Equal(t, 30*time.Second, r.BackoffFor(10))
	assert.Equal(t, 30*time.Second, r.BackoffFor(50))

	// Non-decreasing across the whole range.
	prev := time.Duration(0)
	for attempt := 1; attempt <= 20; attempt++ {
		d := r.BackoffFor(attempt)
		assert.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
		prev = d
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return fmt.Errorf("upload: %w", ErrAuthExpired)
	})

	require.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, 1, calls, "terminal errors must not be retried")
}

func TestDoExhaustsAttempts(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return ErrRateLimited
	})

	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, calls)
}

func TestDoRecoversAfterTransientFailure(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxAttempts: 4, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return ErrNetworkTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxAttempts: 10, InitialBackoff: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Do(ctx, func() error { return ErrNetworkTransient })
	require.ErrorIs(t, err, context.Canceled)
}

func TestDoBytes(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond})

	out, err := r.DoBytes(context.Background(), func() ([]byte, error) {
		return []byte("payload"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), out)

	_, err = r.DoBytes(context.Background(), func() ([]byte, error) {
		return nil, ErrNotFound
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"auth expired", ErrAuthExpired, false},
		{"config incomplete", fmt.Errorf("init: %w", ErrConfigIncomplete), false},
		{"not found", ErrNotFound, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"rate limited", ErrRateLimited, true},
		{"transient network", fmt.Errorf("get object: %w", ErrNetworkTransient), true},
		{"raw connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"raw 503", errors.New("unexpected status 503"), true},
		{"unclassified", errors.New("something odd"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}

func TestIsSystemic(t *testing.T) {
	assert.True(t, IsSystemic(ErrAuthExpired))
	assert.True(t, IsSystemic(ErrConfigIncomplete))
	assert.True(t, IsSystemic(fmt.Errorf("list: %w", ErrNetworkTransient)))
	assert.True(t, IsSystemic(context.Canceled))

	assert.False(t, IsSystemic(ErrNotFound))
	assert.False(t, IsSystemic(ErrRateLimited))
	assert.False(t, IsSystemic(errors.New("corrupt item")))
}
