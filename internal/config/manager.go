// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

const (
	// minSyncInterval is the floor enforced on the scheduled sync interval.
	minSyncInterval = time.Minute

	// defaultSyncInterval applies when no interval has been configured.
	defaultSyncInterval = 5 * time.Minute
)

// SettingsStore is the slice of the local settings repository the runtime
// configuration manager needs.
type SettingsStore interface {
	// ListSettings returns every key/value pair whose key starts with prefix.
	ListSettings(ctx context.Context, prefix string) (map[string]string, error)

	// SetSettings writes all given pairs in a single transaction. Either
	// every pair is persisted or none.
	SetSettings(ctx context.Context, values map[string]string) error

	// DeleteSetting removes one key. Absent keys are not an error.
	DeleteSetting(ctx context.Context, key string) error
}

// Manager is the runtime configuration layer. It caches the agent's own
// settings (the KeyPrefix namespace), obfuscates credentials at rest, and
// owns the sync exclusion predicate every enumeration consults.
type Manager struct {
	store SettingsStore
	obf   crypto.Obfuscator
	log   *logger.Logger

	mu         sync.RWMutex
	passphrase string
	values     map[string]string
	exclusions map[string]struct{}
}

// NewManager constructs the runtime configuration manager. Call Load before
// first use.
func NewManager(store SettingsStore, obf crypto.Obfuscator, log *logger.Logger) *Manager {
	return &Manager{
		store:      store,
		obf:        obf,
		log:        log,
		values:     make(map[string]string),
		exclusions: make(map[string]struct{}),
	}
}

// SetPassphrase installs the passphrase used to deobfuscate stored
// credentials and to re-obfuscate them on Save.
func (m *Manager) SetPassphrase(passphrase string) {
	m.mu.Lock()
	m.passphrase = passphrase
	m.mu.Unlock()
}

// Load reads the agent's settings namespace into the in-memory cache and
// deobfuscates sensitive fields. A credential that fails to deobfuscate
// (wrong passphrase, corrupt value) is logged and left empty; startup is
// never blocked on it.
func (m *Manager) Load(ctx context.Context) error {
	stored, err := m.store.ListSettings(ctx, KeyPrefix)
	if err != nil {
		return fmt.Errorf("load settings namespace: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string, len(stored))
	for key, value := range stored {
		if _, sensitive := sensitiveKeys[key]; sensitive && m.obf.IsObfuscated(value) {
			plain, err := m.obf.Deobfuscate(value, m.passphrase)
			if err != nil {
				m.log.Warn().
					Str("func", "Manager.Load").
					Str("key", key).
					Err(err).
					Msg("credential failed to deobfuscate, leaving empty")
				value = ""
			} else {
				value = plain
			}
		}
		m.values[key] = value
	}

	m.rebuildExclusionsLocked()
	return nil
}

// Get returns the cached value for key, empty string when unset.
func (m *Manager) Get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Set stages a value in the cache. Nothing is persisted until Save.
func (m *Manager) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	if key == KeyExclusions {
		m.rebuildExclusionsLocked()
	}
}

// Save persists the entire cached namespace in one transaction. Sensitive
// fields are re-obfuscated with the current passphrase at save time, so a
// passphrase change re-keys every stored credential on the next Save.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.RLock()
	out := make(map[string]string, len(m.values))
	for key, value := range m.values {
		if _, sensitive := sensitiveKeys[key]; sensitive && value != "" {
			value = m.obf.Obfuscate(value, m.passphrase)
		}
		out[key] = value
	}
	m.mu.RUnlock()

	if err := m.store.SetSettings(ctx, out); err != nil {
		return fmt.Errorf("save settings namespace: %w", err)
	}
	return nil
}

// ShouldExclude reports whether a settings key must be kept out of sync:
// the agent's own namespace (tombstone mirrors excepted), fixed
// housekeeping keys, and the user-configured exclusion list.
func (m *Manager) ShouldExclude(key string) bool {
	if _, ok := housekeepingKeys[key]; ok {
		return true
	}
	if strings.HasPrefix(key, KeyPrefix) {
		return !strings.HasPrefix(key, KeyTombstonePrefix)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.exclusions[key]
	return ok
}

// ReloadExclusions re-reads the user exclusion list from the settings
// store, picking up changes made by another session.
func (m *Manager) ReloadExclusions(ctx context.Context) error {
	stored, err := m.store.ListSettings(ctx, KeyExclusions)
	if err != nil {
		return fmt.Errorf("reload exclusions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[KeyExclusions] = stored[KeyExclusions]
	m.rebuildExclusionsLocked()
	return nil
}

// rebuildExclusionsLocked parses the CSV exclusion list. Caller holds mu.
func (m *Manager) rebuildExclusionsLocked() {
	m.exclusions = make(map[string]struct{})
	for _, key := range strings.Split(m.values[KeyExclusions], ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			m.exclusions[key] = struct{}{}
		}
	}
}

// SyncInterval returns the scheduled sync interval with the floor applied.
func (m *Manager) SyncInterval() time.Duration {
	raw := m.Get(KeySyncInterval)
	if raw == "" {
		return defaultSyncInterval
	}

	interval, err := time.ParseDuration(raw)
	if err != nil {
		m.log.Warn().
			Str("func", "Manager.SyncInterval").
			Str("value", raw).
			Msg("unparsable sync interval, using default")
		return defaultSyncInterval
	}
	if interval < minSyncInterval {
		return minSyncInterval
	}
	return interval
}

// AutoSync reports whether the scheduled sync loop is enabled.
func (m *Manager) AutoSync() bool {
	enabled, err := strconv.ParseBool(m.Get(KeyAutoSync))
	if err != nil {
		return false
	}
	return enabled
}

// ApplyBootstrap persists non-empty launch parameters into the runtime
// settings store so flags and env become durable provider configuration.
// Already-stored values win over empty launch fields.
func (m *Manager) ApplyBootstrap(ctx context.Context, cfg *StructuredConfig) error {
	bootstrap := map[string]string{
		KeyProviderName:      cfg.Provider.Name,
		KeyS3Bucket:          cfg.Provider.S3.Bucket,
		KeyS3Region:          cfg.Provider.S3.Region,
		KeyS3Endpoint:        cfg.Provider.S3.Endpoint,
		KeyS3AccessKeyID:     cfg.Provider.S3.AccessKeyID,
		KeyS3SecretAccessKey: cfg.Provider.S3.SecretAccessKey,
		KeyS3Prefix:          cfg.Provider.S3.Prefix,
		KeyDriveBaseURL:      cfg.Provider.Drive.BaseURL,
		KeyDriveClientID:     cfg.Provider.Drive.ClientID,
		KeyDriveAccessToken:  cfg.Provider.Drive.AccessToken,
		KeyDriveRootFolder:   cfg.Provider.Drive.RootFolder,
	}
	if cfg.Provider.S3.UsePathStyle {
		bootstrap[KeyS3UsePathStyle] = "true"
	}
	if cfg.Sync.Interval > 0 {
		bootstrap[KeySyncInterval] = cfg.Sync.Interval.String()
	}
	if cfg.Sync.AutoSync {
		bootstrap[KeyAutoSync] = "true"
	}

	m.mu.Lock()
	changed := false
	for key, value := range bootstrap {
		if value == "" {
			continue
		}
		if m.values[key] != value {
			m.values[key] = value
			changed = true
		}
	}
	if changed {
		m.rebuildExclusionsLocked()
	}
	m.mu.Unlock()

	if !changed {
		return nil
	}
	return m.Save(ctx)
}
