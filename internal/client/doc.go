// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync agent application runtime.
//
// It wires the local store, settings manager, crypto, storage providers,
// leader election, background workers, and the local control API into a
// single process lifecycle.
package client
