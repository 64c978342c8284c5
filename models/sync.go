// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncPlan is the minimal set of actions that reconciles local state with
// the cloud. Each slice holds item ids; the orchestrator resolves payloads
// and metadata entries when it applies the plan.
type SyncPlan struct {
	// Uploads are locally changed live items (synced=0, not deleted) whose
	// payloads must be pushed to the cloud.
	Uploads []string

	// Tombstones are locally deleted items whose tombstone entry has not
	// yet reached the cloud. Applying one uploads the tombstone metadata
	// and deletes the remote payload object.
	Tombstones []string

	// Downloads are ids the cloud has live and the local side does not;
	// applying one downloads and materializes the payload locally.
	Downloads []string

	// LocalDeletes are ids tombstoned in the cloud at a higher version than
	// anything known locally; applying one removes the local payload
	// without creating a fresh tombstone.
	LocalDeletes []string
}

// Empty reports whether the plan contains no work.
func (p SyncPlan) Empty() bool {
	return len(p.Uploads) == 0 && len(p.Tombstones) == 0 &&
		len(p.Downloads) == 0 && len(p.LocalDeletes) == 0
}

// SyncState is the orchestrator's externally visible state.
type SyncState string

const (
	SyncIdle     SyncState = "idle"
	SyncDiffing  SyncState = "diffing"
	SyncApplying SyncState = "applying"
	SyncError    SyncState = "error"
)
