// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Settings keys of the agent's own namespace. Everything under KeyPrefix
// is excluded from sync except the tombstone mirror keys, which carry
// deletion markers between sessions.
const (
	// KeyPrefix is the namespace for all agent-owned settings keys.
	KeyPrefix = "vaultsync."

	// KeyTombstonePrefix marks mirror keys holding pending deletion
	// markers. The only KeyPrefix subtree that does participate in sync.
	KeyTombstonePrefix = "vaultsync.tombstone."

	// KeyMetadata holds the serialized local metadata document.
	KeyMetadata = "vaultsync.metadata"

	KeyProviderName      = "vaultsync.provider.name"
	KeyS3Bucket          = "vaultsync.provider.s3.bucket"
	KeyS3Region          = "vaultsync.provider.s3.region"
	KeyS3Endpoint        = "vaultsync.provider.s3.endpoint"
	KeyS3AccessKeyID     = "vaultsync.provider.s3.access_key_id"
	KeyS3SecretAccessKey = "vaultsync.provider.s3.secret_access_key"
	KeyS3Prefix          = "vaultsync.provider.s3.prefix"
	KeyS3UsePathStyle    = "vaultsync.provider.s3.use_path_style"
	KeyDriveBaseURL      = "vaultsync.provider.drive.base_url"
	KeyDriveClientID     = "vaultsync.provider.drive.client_id"
	KeyDriveAccessToken  = "vaultsync.provider.drive.access_token"
	KeyDriveRootFolder   = "vaultsync.provider.drive.root_folder"

	KeySyncInterval = "vaultsync.sync.interval"
	KeyAutoSync     = "vaultsync.sync.auto"
	KeyExclusions   = "vaultsync.sync.exclusions"
	KeyLastSyncAt   = "vaultsync.sync.last"

	// Housekeeping keys: per-session state that must never travel between
	// sessions.
	KeySessionID    = "vaultsync.session.id"
	KeyLeaderClaim  = "vaultsync.leader.claim"
	KeyLastBackupAt = "vaultsync.backup.last"
	KeyWindowState  = "vaultsync.session.window"
	KeySessionState = "vaultsync.session.state"
)

// sensitiveKeys are obfuscated at rest with the user passphrase.
var sensitiveKeys = map[string]struct{}{
	KeyS3AccessKeyID:     {},
	KeyS3SecretAccessKey: {},
	KeyDriveAccessToken:  {},
}

// housekeepingKeys are always excluded from sync regardless of namespace
// rules.
var housekeepingKeys = map[string]struct{}{
	KeySessionID:    {},
	KeyLeaderClaim:  {},
	KeyLastBackupAt: {},
	KeyWindowState:  {},
	KeySessionState: {},
}
