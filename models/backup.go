// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupType distinguishes user-requested snapshots from scheduled backups.
// Retention pruning applies only to scheduled backups.
type BackupType string

const (
	BackupSnapshot  BackupType = "snapshot"
	BackupScheduled BackupType = "scheduled"
)

// BackupEntry describes one completed snapshot or scheduled backup.
type BackupEntry struct {
	// Name is the human-readable backup name.
	Name string `json:"name"`

	// Type marks the backup as a snapshot or a scheduled run.
	Type BackupType `json:"type"`

	// Key is the cloud folder prefix holding the backup's objects.
	Key string `json:"key"`

	// ItemCount is the number of items written into the backup.
	ItemCount int `json:"item_count"`

	// ByteCount is the cumulative estimated size of the backed-up items.
	ByteCount int64 `json:"byte_count"`

	// Completion is the fraction of enumerated items successfully written,
	// 1.0 for a clean run. Partial backups stay listed so the user can see
	// they are incomplete.
	Completion float64 `json:"completion"`

	CreatedAt time.Time `json:"created_at"`
}

// BackupManifest is the index of all known backups, stored as a plain
// metadata object so it can be listed without the encryption passphrase.
type BackupManifest struct {
	Backups []BackupEntry `json:"backups"`
}

// Remove deletes the entry with the given key, reporting whether it existed.
func (m *BackupManifest) Remove(key string) bool {
	for i, b := range m.Backups {
		if b.Key == key {
			m.Backups = append(m.Backups[:i], m.Backups[i+1:]...)
			return true
		}
	}
	return false
}
