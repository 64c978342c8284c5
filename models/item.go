// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ItemKind defines which local persistence surface an item belongs to.
// The value determines how the payload is encrypted for upload: settings
// and records go through the JSON envelope, blobs use the raw-bytes path.
type ItemKind string

const (
	// KindSetting is a flat string-keyed entry from the settings store.
	KindSetting ItemKind = "setting"

	// KindRecord is a structured record from the record store.
	KindRecord ItemKind = "record"

	// KindBlob is a binary attachment stored alongside records.
	// Blobs skip the JSON envelope and are encrypted as raw bytes.
	KindBlob ItemKind = "blob"
)

// Item is a single unit of local data owned by the local store adapter.
type Item struct {
	// ID is the item key, unique within its store.
	ID string

	// Kind identifies the persistence surface the item came from.
	Kind ItemKind

	// Payload is the item content. Plaintext while local; opaque bytes
	// once passed through the crypto service.
	Payload []byte

	// SizeEstimate is a cheap byte-size approximation used for batching
	// decisions. Blobs report their exact byte length; records report
	// field count times a constant, never a full serialization pass.
	SizeEstimate int64
}

// Batch is one bounded slice of items produced by a streaming enumeration.
type Batch struct {
	Items []Item
}

// SizeEstimate summarises the local dataset before enumeration so the
// adapter can decide between single-batch and streamed modes.
type SizeEstimate struct {
	TotalBytes    int64
	ItemCount     int
	ExcludedCount int
}
