// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SettingStat is a key plus its stored byte length, used for size
// estimation without loading values.
type SettingStat struct {
	Key   string
	Bytes int64
}

// RecordStat is the per-row sizing data of the records table.
type RecordStat struct {
	ID         string
	Kind       models.ItemKind
	FieldCount int
	Bytes      int64
}

// SettingsRepository is the low-level flat key/value settings table.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	SetSettings(ctx context.Context, values map[string]string) error
	DeleteSetting(ctx context.Context, key string) error
	ListSettings(ctx context.Context, prefix string) (map[string]string, error)
	ListSettingsPage(ctx context.Context, limit, offset int) ([]models.Item, error)
	StatSettings(ctx context.Context) ([]SettingStat, error)
}

// RecordsRepository is the low-level table of records and blobs.
type RecordsRepository interface {
	GetRecord(ctx context.Context, id string, kind models.ItemKind) (models.Item, error)
	SaveRecord(ctx context.Context, item models.Item) error
	DeleteRecord(ctx context.Context, id string, kind models.ItemKind) error
	ListRecordsPage(ctx context.Context, limit, offset int) ([]models.Item, error)
	StatRecords(ctx context.Context) ([]RecordStat, error)
}

// MetadataRepository persists the local copy of the shared metadata
// document.
type MetadataRepository interface {
	// LoadDocument reads the local document. An absent document yields an
	// empty one, never an error.
	LoadDocument(ctx context.Context) (*models.MetadataDocument, error)

	// SaveDocument persists the document as the new local baseline.
	SaveDocument(ctx context.Context, doc *models.MetadataDocument) error
}

// ExclusionPolicy decides which keys stay out of sync. Implemented by the
// runtime configuration manager.
type ExclusionPolicy interface {
	ShouldExclude(key string) bool
}

// DeleteOptions controls tombstone creation on delete.
type DeleteOptions struct {
	// SuppressTombstone skips writing the deletion marker. Used when a
	// delete merely replays a remote tombstone and must not re-announce it.
	SuppressTombstone bool
}

// LocalStore is the uniform surface the sync engine reads and writes local
// data through. All reads and enumeration respect the exclusion policy.
type LocalStore interface {
	// EstimateSize sizes the syncable dataset cheaply: blob bytes are
	// exact, record sizes derive from field counts, nothing is fully
	// serialized.
	EstimateSize(ctx context.Context) (models.SizeEstimate, error)

	// Enumerate streams the syncable dataset. Small datasets arrive as a
	// single batch; large ones as bounded batches with a yield pause in
	// between. The channel closes when enumeration finishes or ctx ends.
	Enumerate(ctx context.Context) (<-chan models.Batch, error)

	// Get reads one item. Returns ErrItemNotFound for absent ids and
	// ErrItemExcluded for keys the policy hides from sync.
	Get(ctx context.Context, id string, kind models.ItemKind) (models.Item, error)

	// Put writes one item into the store surface matching its kind.
	Put(ctx context.Context, item models.Item) error

	// Delete removes an item and, unless suppressed, records a deletion
	// marker. The returned bool reports whether a marker was written.
	Delete(ctx context.Context, id string, kind models.ItemKind, opts DeleteOptions) (bool, error)
}
