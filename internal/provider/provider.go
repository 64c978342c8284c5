// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package provider defines the storage backend contract the sync engine
// uploads encrypted payloads through, the retry/backoff helper shared by
// all backends, and the error taxonomy the orchestrator classifies against.
//
// Two backends ship with the engine: a generic object store (S3 and
// compatibles) and a folder-oriented consumer cloud drive. Backends are
// registered by name and selected at runtime from configuration.
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider is the uniform contract every storage backend implements.
//
// Keys are slash-separated path strings. Metadata objects (isMetadata=true)
// are stored as plain structured text so sync state can be listed and
// inspected without the passphrase; non-metadata payloads are encrypted by
// the caller before upload and decrypted after download.
type Provider interface {
	// Name returns the registry name of the backend.
	Name() string

	// IsConfigured reports whether every required credential and setting
	// is present. A non-configured provider must not be initialized.
	IsConfigured() bool

	// Initialize prepares the backend for use (client construction, root
	// folder resolution). Returns ErrConfigIncomplete when IsConfigured
	// is false.
	Initialize(ctx context.Context) error

	// Upload stores data under key.
	Upload(ctx context.Context, key string, data []byte, isMetadata bool) error

	// Download fetches the object at key. Returns ErrNotFound when the
	// object does not exist.
	Download(ctx context.Context, key string, isMetadata bool) ([]byte, error)

	// Delete removes the object at key. Deleting an absent object is not
	// an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all objects under prefix, relative to the
	// backend's root.
	List(ctx context.Context, prefix string) ([]string, error)

	// CopyObject duplicates the object at src to dst server-side.
	CopyObject(ctx context.Context, src, dst string) error

	// EnsurePathExists creates the folder hierarchy for path on backends
	// with real folders; a no-op for flat key spaces.
	EnsurePathExists(ctx context.Context, path string) error

	// DeleteFolder removes path and everything under it, invalidating any
	// cached folder ids below it.
	DeleteFolder(ctx context.Context, path string) error

	// Verify round-trips a List("") to confirm the credentials work.
	Verify(ctx context.Context) error
}

// ReauthFunc is called when a backend hits ErrAuthExpired after clearing
// its cached token. Background sync halts until the user re-authenticates.
type ReauthFunc func(providerName string)

// Registry holds the available backends keyed by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Provider)}
}

// Register adds p under its name, replacing any previous registration.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[p.Name()] = p
}

// Get returns the backend registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the sorted names of all registered backends.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
