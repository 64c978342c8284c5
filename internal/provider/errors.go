// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors forming the provider failure taxonomy. Backends wrap
// transport failures into one of these so the orchestrator and retry layer
// can classify without knowing vendor specifics. Callers match with
// [errors.Is].
var (
	// ErrConfigIncomplete is returned when a required credential or setting
	// is missing. Blocks Initialize; the user must complete setup first.
	ErrConfigIncomplete = errors.New("provider configuration incomplete")

	// ErrAuthExpired is returned when the backend's token or credentials
	// were rejected. Never retried: cached tokens are cleared and the
	// re-authentication callback is escalated instead.
	ErrAuthExpired = errors.New("provider authentication expired")

	// ErrRateLimited is returned on throttling responses. Retried with
	// backoff.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrNetworkTransient marks connectivity-level failures (timeouts,
	// resets, 5xx). Retried with backoff.
	ErrNetworkTransient = errors.New("transient network error")

	// ErrNotFound is returned when the requested object does not exist.
	// Treated as "absent", not as a failure, for download-of-deleted-item
	// cases.
	ErrNotFound = errors.New("object not found")

	// ErrUnknownProvider is returned by the registry for an unregistered
	// backend name.
	ErrUnknownProvider = errors.New("unknown storage provider")
)

// IsRetryable reports whether err is worth another attempt. Auth and
// configuration failures are terminal; rate limits and transient network
// errors are not. Unclassified errors fall through to a pattern check on
// the message, covering raw transport errors a backend failed to wrap.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrAuthExpired) || errors.Is(err, ErrConfigIncomplete) || errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetworkTransient) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"503",
		"502",
		"504",
		"429",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// IsSystemic reports whether err invalidates the whole sync run rather than
// a single item: lost connectivity, bad credentials, or missing setup. The
// orchestrator aborts on systemic errors and skips-and-logs everything else.
func IsSystemic(err error) bool {
	return errors.Is(err, ErrAuthExpired) ||
		errors.Is(err, ErrConfigIncomplete) ||
		errors.Is(err, ErrNetworkTransient) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
