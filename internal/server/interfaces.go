// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the control API listener.
type Server interface {
	// RunServer blocks serving requests until Shutdown is called or the
	// listener fails. A clean shutdown returns nil.
	RunServer() error

	// Shutdown stops accepting new requests and drains in-flight ones
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
