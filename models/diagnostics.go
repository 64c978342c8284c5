// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Diagnostics is a read-only summary of sync state exposed for display.
// None of these counts feed back into the reconciliation algorithm.
type Diagnostics struct {
	LocalItemCount     int        `json:"local_item_count"`
	LocalMetadataCount int        `json:"local_metadata_count"`
	CloudMetadataCount int        `json:"cloud_metadata_count"`
	ExcludedCount      int        `json:"excluded_count"`
	LastSyncAt         *time.Time `json:"last_sync_at,omitempty"`
	State              SyncState  `json:"state"`
	Leader             bool       `json:"leader"`
	ProviderReachable  bool       `json:"provider_reachable"`
}
