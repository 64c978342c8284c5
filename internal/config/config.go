// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level launch configuration for the
// go-vault-sync agent. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Launch configuration covers what must be known before the local store
// opens (paths, DSN, listener address). Everything else lives in the
// runtime settings store managed by [Manager].
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds agent-level settings such as the data directory and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Provider holds bootstrap values for the cloud storage backends.
	// Values given here are persisted into the runtime settings store on
	// first start.
	Provider Provider `envPrefix:"PROVIDER_"`

	// Sync holds bootstrap values for the sync scheduler.
	Sync Sync `envPrefix:"SYNC_"`

	// Control holds the local control API listener settings.
	Control Control `envPrefix:"CONTROL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds agent-level configuration values.
type App struct {
	// DataDir is the directory holding the local database, the leader
	// claim file, and agent logs.
	// Env: APP_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// Version is the semantic version string of the running agent.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Passphrase unlocks payload encryption and stored credentials. Env
	// only, never a flag (argv is world-readable) and never persisted.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite connection string
	// (e.g. "file:vaultsync.db?_journal_mode=WAL").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Provider holds bootstrap credentials for the storage backends. Any
// non-empty field is written into the runtime settings store (sensitive
// fields obfuscated) on first start.
type Provider struct {
	// Name selects the active backend: "s3" or "clouddrive".
	// Env: PROVIDER_NAME
	Name string `env:"NAME"`

	S3    S3    `envPrefix:"S3_"`
	Drive Drive `envPrefix:"DRIVE_"`
}

// S3 holds object-storage backend settings.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Prefix          string `env:"PREFIX"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
}

// Drive holds consumer cloud-drive backend settings.
type Drive struct {
	BaseURL     string `env:"BASE_URL"`
	ClientID    string `env:"CLIENT_ID"`
	AccessToken string `env:"ACCESS_TOKEN"`
	RootFolder  string `env:"ROOT_FOLDER"`
}

// Sync holds bootstrap values for the scheduled sync loop.
type Sync struct {
	// Interval is how often the leader session runs a full sync. Values
	// below one minute are raised to the floor at runtime.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// AutoSync enables the scheduled loop at startup.
	// Env: SYNC_AUTO
	AutoSync bool `env:"AUTO"`
}

// Control holds the local control API listener settings.
type Control struct {
	// HTTPAddress is the loopback TCP address the control API listens on,
	// in "host:port" format (e.g. "127.0.0.1:7424").
	// Env: CONTROL_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single control
	// request (e.g. "30s", "1m").
	// Env: CONTROL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the agent launch
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
