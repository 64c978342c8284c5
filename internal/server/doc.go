// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the agent's local control API listener and owns its
// graceful shutdown.
package server
