package service

import "errors"

// Sentinel errors of the sync engine. Callers match with [errors.Is].
var (
	// ErrSyncInProgress is returned when a sync run is requested while
	// another one is still executing.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoProviderSelected is returned when no storage provider has been
	// configured as active.
	ErrNoProviderSelected = errors.New("no storage provider selected")

	// ErrTombstoneNotFound is returned when a purge or restore targets an
	// id with no tombstone entry.
	ErrTombstoneNotFound = errors.New("tombstone not found")

	// ErrBackupNotFound is returned when a restore or delete targets a key
	// absent from the backup manifest.
	ErrBackupNotFound = errors.New("backup not found")
)
