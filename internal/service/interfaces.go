// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the sync engine's core logic: the reconciliation
// planner, the orchestrator that executes full sync runs against a storage
// provider, and the backup manager.
package service

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Planner builds the minimal action plan that reconciles the local and
// cloud metadata documents. Stateless and purely in-memory.
type Planner interface {
	BuildSyncPlan(ctx context.Context, local, cloud *models.MetadataDocument) (models.SyncPlan, error)
}

// Orchestrator drives sync runs and owns the externally visible sync state.
// At most one run executes at a time; a second caller gets
// ErrSyncInProgress instead of queueing here (queueing is the operation
// queue's job).
type Orchestrator interface {
	// PerformFullSync reconciles local and cloud state in both directions
	// and persists the merged metadata document as the new shared baseline.
	PerformFullSync(ctx context.Context) error

	// ForceExportToCloud pushes every local item and a freshly built
	// metadata document to the cloud, replacing whatever is there.
	ForceExportToCloud(ctx context.Context) error

	// ForceImportFromCloud pulls every cloud item into the local store and
	// adopts the cloud metadata document as the local baseline. It fails
	// without adopting the baseline unless the full pull succeeds.
	ForceImportFromCloud(ctx context.Context) error

	// Diagnostics returns read-only counts for display.
	Diagnostics(ctx context.Context) (models.Diagnostics, error)

	// PurgeTombstone permanently removes a tombstone entry from both
	// metadata documents. The id can never be resurrected by that tombstone
	// afterwards.
	PurgeTombstone(ctx context.Context, id string) error

	// RestoreTombstones clears the tombstone state of the given ids so
	// locally re-created payloads upload again on the next sync.
	RestoreTombstones(ctx context.Context, ids []string) error

	// State returns the current sync state.
	State() models.SyncState
}

// BackupManager creates, restores, lists, and prunes cloud backups.
type BackupManager interface {
	// CreateSnapshot writes every syncable item, encrypted, into a fresh
	// uniquely named cloud folder and records it in the backup manifest.
	CreateSnapshot(ctx context.Context, name string) (models.BackupEntry, error)

	// CheckAndPerformDailyBackup runs a scheduled backup when the daily
	// interval since the last one has elapsed, then prunes scheduled
	// backups beyond the retention limit.
	CheckAndPerformDailyBackup(ctx context.Context) error

	// ListBackups returns the manifest entries.
	ListBackups(ctx context.Context) ([]models.BackupEntry, error)

	// RestoreFromBackup writes every item of the backup back into the
	// local store. The caller must reload all local state afterwards.
	RestoreFromBackup(ctx context.Context, key string) error

	// DeleteBackup removes the backup's cloud folder and only then its
	// manifest entry, so a half-deleted backup stays visible.
	DeleteBackup(ctx context.Context, key string) error
}
