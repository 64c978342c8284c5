// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/provider"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

// BackupFolderPrefix is the cloud folder holding every backup. Exposed so
// the control surface can rebuild full backup keys from route parameters.
const BackupFolderPrefix = "backups/"

const (
	manifestObjectKey = "backups/index.json"

	// dailyBackupInterval is the minimum spacing between scheduled backups.
	dailyBackupInterval = 24 * time.Hour

	// defaultBackupRetention is how many scheduled backups survive pruning.
	// Snapshots are never pruned.
	defaultBackupRetention = 7
)

type backupManager struct {
	localStore store.LocalStore
	settings   store.SettingsRepository
	cfg        *config.Manager
	crypto     crypto.Service
	registry   *provider.Registry
	clock      clockwork.Clock
	retention  int
	logger     *logger.Logger
}

// NewBackupManager wires the backup subsystem. The clock is injected so
// scheduling is testable with a fake.
func NewBackupManager(
	localStore store.LocalStore,
	settings store.SettingsRepository,
	cfg *config.Manager,
	cr crypto.Service,
	registry *provider.Registry,
	clock clockwork.Clock,
	log *logger.Logger,
) BackupManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &backupManager{
		localStore: localStore,
		settings:   settings,
		cfg:        cfg,
		crypto:     cr,
		registry:   registry,
		clock:      clock,
		retention:  defaultBackupRetention,
		logger:     log,
	}
}

func (b *backupManager) CreateSnapshot(ctx context.Context, name string) (models.BackupEntry, error) {
	return b.createBackup(ctx, name, models.BackupSnapshot)
}

// createBackup streams the bounded enumeration into a unique cloud folder.
// Per-item failures lower the completion ratio instead of aborting, so a
// flaky connection still yields a usable partial backup.
// createBackup seals every item, blobs included, in the JSON envelope.
// The incremental sync path stores blob bytes raw because the metadata
// document carries the id and kind; a backup object has no such sidecar,
// so the envelope is what lets restore rebuild the item from the
// ciphertext alone.
func (b *backupManager) createBackup(ctx context.Context, name string, backupType models.BackupType) (models.BackupEntry, error) {
	prov, err := resolveProvider(b.cfg, b.registry)
	if err != nil {
		return models.BackupEntry{}, err
	}

	key := BackupFolderPrefix + name + "-" + uuid.NewString()
	if err := prov.EnsurePathExists(ctx, key); err != nil {
		return models.BackupEntry{}, fmt.Errorf("create backup folder: %w", err)
	}

	batches, err := b.localStore.Enumerate(ctx)
	if err != nil {
		return models.BackupEntry{}, fmt.Errorf("enumerate for backup: %w", err)
	}

	var total, written int
	var byteCount int64
	for batch := range batches {
		for _, item := range batch.Items {
			total++

			data, err := b.crypto.Encrypt(itemEnvelope{ID: item.ID, Kind: item.Kind, Payload: item.Payload}, item.ID)
			if err == nil {
				err = prov.Upload(ctx, key+"/"+backupObjectName(item.ID), data, false)
			}
			if err != nil {
				if isSystemic(err) {
					return models.BackupEntry{}, fmt.Errorf("backup %q: %w", item.ID, err)
				}
				b.logger.Warn().
					Str("func", "backupManager.createBackup").
					Str("id", item.ID).
					Err(err).
					Msg("item skipped in backup")
				continue
			}

			written++
			byteCount += item.SizeEstimate
		}
	}
	if err := ctx.Err(); err != nil {
		return models.BackupEntry{}, err
	}

	completion := 1.0
	if total > 0 {
		completion = float64(written) / float64(total)
	}

	entry := models.BackupEntry{
		Name:       name,
		Type:       backupType,
		Key:        key,
		ItemCount:  written,
		ByteCount:  byteCount,
		Completion: completion,
		CreatedAt:  b.clock.Now().UTC(),
	}

	if err := b.appendManifest(ctx, prov, entry); err != nil {
		return models.BackupEntry{}, err
	}

	b.logger.Info().
		Str("func", "backupManager.createBackup").
		Str("key", key).
		Int("items", written).
		Float64("completion", completion).
		Msg("backup complete")
	return entry, nil
}

func (b *backupManager) CheckAndPerformDailyBackup(ctx context.Context) error {
	now := b.clock.Now().UTC()

	if stamp, err := b.settings.GetSetting(ctx, config.KeyLastBackupAt); err == nil {
		last, parseErr := time.Parse(time.RFC3339, stamp)
		if parseErr == nil && now.Sub(last) < dailyBackupInterval {
			return nil
		}
	}

	name := "daily-" + now.Format("2006-01-02")
	if _, err := b.createBackup(ctx, name, models.BackupScheduled); err != nil {
		return fmt.Errorf("scheduled backup: %w", err)
	}

	if err := b.settings.SetSetting(ctx, config.KeyLastBackupAt, now.Format(time.RFC3339)); err != nil {
		b.logger.Warn().
			Str("func", "backupManager.CheckAndPerformDailyBackup").
			Err(err).
			Msg("failed to stamp last backup time")
	}

	return b.pruneScheduled(ctx)
}

// pruneScheduled deletes the oldest scheduled backups beyond retention.
func (b *backupManager) pruneScheduled(ctx context.Context) error {
	prov, err := resolveProvider(b.cfg, b.registry)
	if err != nil {
		return err
	}

	manifest, err := b.loadManifest(ctx, prov)
	if err != nil {
		return err
	}

	var scheduled []models.BackupEntry
	for _, entry := range manifest.Backups {
		if entry.Type == models.BackupScheduled {
			scheduled = append(scheduled, entry)
		}
	}
	if len(scheduled) <= b.retention {
		return nil
	}

	sort.Slice(scheduled, func(i, j int) bool {
		return scheduled[i].CreatedAt.Before(scheduled[j].CreatedAt)
	})

	for _, victim := range scheduled[:len(scheduled)-b.retention] {
		if err := b.DeleteBackup(ctx, victim.Key); err != nil {
			b.logger.Warn().
				Str("func", "backupManager.pruneScheduled").
				Str("key", victim.Key).
				Err(err).
				Msg("failed to prune scheduled backup")
		}
	}
	return nil
}

func (b *backupManager) ListBackups(ctx context.Context) ([]models.BackupEntry, error) {
	prov, err := resolveProvider(b.cfg, b.registry)
	if err != nil {
		return nil, err
	}

	manifest, err := b.loadManifest(ctx, prov)
	if err != nil {
		return nil, err
	}
	return manifest.Backups, nil
}

func (b *backupManager) RestoreFromBackup(ctx context.Context, key string) error {
	prov, err := resolveProvider(b.cfg, b.registry)
	if err != nil {
		return err
	}

	manifest, err := b.loadManifest(ctx, prov)
	if err != nil {
		return err
	}
	if !manifestHas(manifest, key) {
		return fmt.Errorf("key %q: %w", key, ErrBackupNotFound)
	}

	keys, err := prov.List(ctx, key+"/")
	if err != nil {
		return fmt.Errorf("list backup objects: %w", err)
	}

	for _, objectKey := range keys {
		data, err := prov.Download(ctx, objectKey, false)
		if err != nil {
			return fmt.Errorf("download backup object %q: %w", objectKey, err)
		}

		var env itemEnvelope
		if err := b.crypto.Decrypt(data, &env); err != nil {
			return fmt.Errorf("decrypt backup object %q: %w", objectKey, err)
		}

		item := models.Item{ID: env.ID, Kind: env.Kind, Payload: env.Payload}
		if err := b.localStore.Put(ctx, item); err != nil {
			return fmt.Errorf("materialize backup item %q: %w", env.ID, err)
		}
	}

	b.logger.Info().
		Str("func", "backupManager.RestoreFromBackup").
		Str("key", key).
		Int("items", len(keys)).
		Msg("backup restored, full local reload required")
	return nil
}

func (b *backupManager) DeleteBackup(ctx context.Context, key string) error {
	prov, err := resolveProvider(b.cfg, b.registry)
	if err != nil {
		return err
	}

	manifest, err := b.loadManifest(ctx, prov)
	if err != nil {
		return err
	}
	if !manifestHas(manifest, key) {
		return fmt.Errorf("key %q: %w", key, ErrBackupNotFound)
	}

	// Subtree first. The manifest entry only goes once the objects are
	// gone, so an interrupted delete keeps the backup listed.
	if err := prov.DeleteFolder(ctx, key); err != nil {
		return fmt.Errorf("delete backup folder: %w", err)
	}

	manifest.Remove(key)
	return b.saveManifest(ctx, prov, manifest)
}

func (b *backupManager) appendManifest(ctx context.Context, prov provider.Provider, entry models.BackupEntry) error {
	manifest, err := b.loadManifest(ctx, prov)
	if err != nil {
		return err
	}
	manifest.Backups = append(manifest.Backups, entry)
	return b.saveManifest(ctx, prov, manifest)
}

func (b *backupManager) loadManifest(ctx context.Context, prov provider.Provider) (*models.BackupManifest, error) {
	data, err := prov.Download(ctx, manifestObjectKey, true)
	if errors.Is(err, provider.ErrNotFound) {
		return &models.BackupManifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load backup manifest: %w", err)
	}

	var manifest models.BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decode backup manifest: %w", err)
	}
	return &manifest, nil
}

func (b *backupManager) saveManifest(ctx context.Context, prov provider.Provider, manifest *models.BackupManifest) error {
	payload, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode backup manifest: %w", err)
	}
	if err := prov.Upload(ctx, manifestObjectKey, payload, true); err != nil {
		return fmt.Errorf("save backup manifest: %w", err)
	}
	return nil
}

func manifestHas(manifest *models.BackupManifest, key string) bool {
	for _, entry := range manifest.Backups {
		if entry.Key == key {
			return true
		}
	}
	return false
}

// backupObjectName encodes an item id into a safe object name. Ids may
// contain slashes, which would otherwise nest folders on drive backends.
func backupObjectName(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}
