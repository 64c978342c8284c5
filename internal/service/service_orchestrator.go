// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/provider"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

type syncOrchestrator struct {
	localStore store.LocalStore
	metadata   store.MetadataRepository
	settings   store.SettingsRepository
	cfg        *config.Manager
	crypto     crypto.Service
	registry   *provider.Registry
	planner    Planner
	isLeader   func() bool
	logger     *logger.Logger

	running atomic.Bool
	mu      sync.RWMutex
	state   models.SyncState
}

// NewOrchestrator wires the sync engine's core loop. isLeader feeds the
// diagnostics view and may be nil before election starts.
func NewOrchestrator(
	localStore store.LocalStore,
	metadata store.MetadataRepository,
	settings store.SettingsRepository,
	cfg *config.Manager,
	cr crypto.Service,
	registry *provider.Registry,
	isLeader func() bool,
	log *logger.Logger,
) Orchestrator {
	if isLeader == nil {
		isLeader = func() bool { return false }
	}
	return &syncOrchestrator{
		localStore: localStore,
		metadata:   metadata,
		settings:   settings,
		cfg:        cfg,
		crypto:     cr,
		registry:   registry,
		planner:    NewPlanner(),
		isLeader:   isLeader,
		logger:     log,
		state:      models.SyncIdle,
	}
}

func (s *syncOrchestrator) State() models.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *syncOrchestrator) setState(state models.SyncState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *syncOrchestrator) PerformFullSync(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	if err := s.fullSync(ctx); err != nil {
		s.setState(models.SyncError)
		s.logger.Err(err).
			Str("func", "syncOrchestrator.PerformFullSync").
			Msg("full sync failed")
		return err
	}

	s.setState(models.SyncIdle)
	return nil
}

func (s *syncOrchestrator) fullSync(ctx context.Context) error {
	s.setState(models.SyncDiffing)

	prov, err := resolveProvider(s.cfg, s.registry)
	if err != nil {
		return err
	}

	local, err := s.metadata.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("load local metadata: %w", err)
	}

	s.absorbTombstoneMirrors(ctx, local)

	if err := s.discoverLocalChanges(ctx, local); err != nil {
		return fmt.Errorf("discover local changes: %w", err)
	}

	cloud, err := s.loadCloudDocument(ctx, prov)
	if err != nil {
		return fmt.Errorf("load cloud metadata: %w", err)
	}

	plan, err := s.planner.BuildSyncPlan(ctx, local, cloud)
	if err != nil {
		return fmt.Errorf("build sync plan: %w", err)
	}

	s.setState(models.SyncApplying)

	// The merged document starts from the cloud baseline and adopts local
	// winners as the plan is applied. Local-only entries survive the merge.
	// The digest always stays this session's own fingerprint: adopting a
	// peer's would make every unchanged item look modified on the next run
	// and re-upload stale payloads over newer ones.
	merged := cloud.Clone()
	for id, le := range local.Entries {
		me, ok := merged.Entries[id]
		if !ok {
			merged.Upsert(le)
			continue
		}
		me.Digest = le.Digest
		merged.Entries[id] = me
	}

	if err := s.applyUploads(ctx, prov, plan.Uploads, local, merged); err != nil {
		return err
	}
	if err := s.applyTombstones(ctx, prov, plan.Tombstones, local, merged); err != nil {
		return err
	}
	if err := s.applyDownloads(ctx, prov, plan.Downloads, local, cloud, merged); err != nil {
		return err
	}
	if err := s.applyLocalDeletes(ctx, prov, plan.LocalDeletes, cloud, merged); err != nil {
		return err
	}

	return s.persistBaseline(ctx, prov, merged)
}

// isSystemic decides between aborting the run and skipping one item.
func isSystemic(err error) bool {
	return provider.IsSystemic(err) || errors.Is(err, crypto.ErrNoEncryptionKey)
}

// skipOrAbort logs and swallows per-item failures, passes systemic ones up.
func (s *syncOrchestrator) skipOrAbort(op, id string, err error) error {
	if isSystemic(err) {
		return fmt.Errorf("%s %q: %w", op, id, err)
	}
	s.logger.Warn().
		Str("func", "syncOrchestrator.fullSync").
		Str("op", op).
		Str("id", id).
		Err(err).
		Msg("skipping item after failure")
	return nil
}

func (s *syncOrchestrator) applyUploads(ctx context.Context, prov provider.Provider, ids []string, local, merged *models.MetadataDocument) error {
	for _, id := range ids {
		entry, _ := local.Entry(id)

		item, err := s.localStore.Get(ctx, id, entry.Type)
		if err != nil {
			if err := s.skipOrAbort("upload", id, err); err != nil {
				return err
			}
			continue
		}

		data, err := sealItem(s.crypto, item)
		if err != nil {
			if err := s.skipOrAbort("upload", id, err); err != nil {
				return err
			}
			continue
		}

		if err := prov.Upload(ctx, itemObjectKey(id), data, false); err != nil {
			if err := s.skipOrAbort("upload", id, err); err != nil {
				return err
			}
			entry.Synced = false
			merged.Upsert(entry)
			continue
		}

		entry.Synced = true
		merged.Upsert(entry)
	}
	return nil
}

func (s *syncOrchestrator) applyTombstones(ctx context.Context, prov provider.Provider, ids []string, local, merged *models.MetadataDocument) error {
	for _, id := range ids {
		entry, _ := local.Entry(id)

		if err := prov.Delete(ctx, itemObjectKey(id)); err != nil {
			if err := s.skipOrAbort("tombstone", id, err); err != nil {
				return err
			}
			entry.Synced = false
			merged.Upsert(entry)
			continue
		}

		entry.Synced = true
		merged.Upsert(entry)
		s.clearMirror(ctx, prov, merged, id)
	}
	return nil
}

func (s *syncOrchestrator) applyDownloads(ctx context.Context, prov provider.Provider, ids []string, local, cloud, merged *models.MetadataDocument) error {
	for _, id := range ids {
		entry, ok := cloud.Entry(id)
		if !ok {
			entry, _ = local.Entry(id)
		}

		data, err := prov.Download(ctx, itemObjectKey(id), false)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				// Tombstoned elsewhere between diff and apply, or the payload
				// object is simply gone. Absent is not a failure.
				s.logger.Debug().
					Str("func", "syncOrchestrator.applyDownloads").
					Str("id", id).
					Msg("remote payload absent, skipping download")
				continue
			}
			if err := s.skipOrAbort("download", id, err); err != nil {
				return err
			}
			continue
		}

		item, err := openItem(s.crypto, id, entry.Type, data)
		if err != nil {
			if err := s.skipOrAbort("download", id, err); err != nil {
				return err
			}
			continue
		}

		if err := s.localStore.Put(ctx, item); err != nil {
			if err := s.skipOrAbort("download", id, err); err != nil {
				return err
			}
			continue
		}

		entry.Deleted = false
		entry.DeletedAt = nil
		entry.Source = ""
		entry.Synced = true
		entry.Digest = itemDigest(item.Payload)
		merged.Upsert(entry)
	}
	return nil
}

func (s *syncOrchestrator) applyLocalDeletes(ctx context.Context, prov provider.Provider, ids []string, cloud, merged *models.MetadataDocument) error {
	for _, id := range ids {
		entry, _ := cloud.Entry(id)

		// Replaying a remote tombstone must not announce a new one.
		_, err := s.localStore.Delete(ctx, id, entry.Type, store.DeleteOptions{SuppressTombstone: true})
		if err != nil && !errors.Is(err, store.ErrItemNotFound) {
			if err := s.skipOrAbort("local delete", id, err); err != nil {
				return err
			}
			continue
		}

		entry.Synced = true
		merged.Upsert(entry)
		s.clearMirror(ctx, prov, merged, id)
	}
	return nil
}

// persistBaseline saves the merged document locally and remotely, once, at
// the end of the run. A crash before this point re-runs work on the next
// sync instead of losing it.
func (s *syncOrchestrator) persistBaseline(ctx context.Context, prov provider.Provider, merged *models.MetadataDocument) error {
	now := time.Now().UTC()
	merged.UpdatedAt = now

	if err := s.metadata.SaveDocument(ctx, merged); err != nil {
		return fmt.Errorf("persist local baseline: %w", err)
	}

	payload, err := json.Marshal(withoutDigests(merged))
	if err != nil {
		return fmt.Errorf("encode cloud baseline: %w", err)
	}
	if err := prov.Upload(ctx, metadataObjectKey, payload, true); err != nil {
		return fmt.Errorf("persist cloud baseline: %w", err)
	}

	if err := s.settings.SetSetting(ctx, config.KeyLastSyncAt, now.Format(time.RFC3339)); err != nil {
		s.logger.Warn().
			Str("func", "syncOrchestrator.persistBaseline").
			Err(err).
			Msg("failed to stamp last sync time")
	}
	return nil
}

// withoutDigests returns a copy of the document with every digest cleared.
// Digests are per-session fingerprints and must never travel in the shared
// cloud copy.
func withoutDigests(doc *models.MetadataDocument) *models.MetadataDocument {
	out := doc.Clone()
	for id, e := range out.Entries {
		e.Digest = ""
		out.Entries[id] = e
	}
	return out
}

// loadCloudDocument fetches the shared document. Absent means first sync.
func (s *syncOrchestrator) loadCloudDocument(ctx context.Context, prov provider.Provider) (*models.MetadataDocument, error) {
	data, err := prov.Download(ctx, metadataObjectKey, true)
	if errors.Is(err, provider.ErrNotFound) {
		return models.NewMetadataDocument(), nil
	}
	if err != nil {
		return nil, err
	}

	doc := models.NewMetadataDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode cloud metadata: %w", err)
	}
	return doc, nil
}

// absorbTombstoneMirrors folds pending deletion markers into the document.
// Mirrors whose tombstone is already recorded are cleaned up immediately.
func (s *syncOrchestrator) absorbTombstoneMirrors(ctx context.Context, doc *models.MetadataDocument) {
	mirrors, err := s.settings.ListSettings(ctx, config.KeyTombstonePrefix)
	if err != nil {
		s.logger.Warn().
			Str("func", "syncOrchestrator.absorbTombstoneMirrors").
			Err(err).
			Msg("failed to list deletion markers")
		return
	}

	for key, raw := range mirrors {
		id := strings.TrimPrefix(key, config.KeyTombstonePrefix)

		var mirror models.TombstoneMirror
		if err := json.Unmarshal([]byte(raw), &mirror); err != nil {
			s.logger.Warn().
				Str("func", "syncOrchestrator.absorbTombstoneMirrors").
				Str("key", key).
				Err(err).
				Msg("unreadable deletion marker, dropping")
			_ = s.settings.DeleteSetting(ctx, key)
			continue
		}

		if entry, ok := doc.Entry(id); ok && entry.Deleted {
			// Already a tombstone; the marker has served its purpose.
			_ = s.settings.DeleteSetting(ctx, key)
			continue
		}

		doc.MarkDeleted(id, mirror.Kind, mirror.Source, mirror.DeletedAt)
	}
}

// discoverLocalChanges walks the syncable dataset and reconciles it with
// the document: unknown ids become unsynced entries, changed payloads flip
// Synced off, and a live payload under a tombstoned id is treated as a
// restore.
func (s *syncOrchestrator) discoverLocalChanges(ctx context.Context, doc *models.MetadataDocument) error {
	batches, err := s.localStore.Enumerate(ctx)
	if err != nil {
		return err
	}

	for batch := range batches {
		for _, item := range batch.Items {
			digest := itemDigest(item.Payload)

			entry, ok := doc.Entry(item.ID)
			switch {
			case !ok:
				doc.Upsert(models.MetadataEntry{
					ItemID: item.ID,
					Type:   item.Kind,
					Synced: false,
					Digest: digest,
				})

			case entry.Deleted:
				// The user re-created a deleted item: restore wins over the
				// retained tombstone.
				restored, _ := doc.Restore(item.ID)
				restored.Digest = digest
				doc.Upsert(restored)

			case entry.Digest != digest:
				entry.Synced = false
				entry.Digest = digest
				doc.Upsert(entry)
			}
		}
	}
	return ctx.Err()
}

// clearMirror removes every trace of a propagated deletion marker: the
// local settings row, its metadata entry, and (best effort) the mirror's
// own cloud payload object.
func (s *syncOrchestrator) clearMirror(ctx context.Context, prov provider.Provider, merged *models.MetadataDocument, id string) {
	key := config.KeyTombstonePrefix + id
	_ = s.settings.DeleteSetting(ctx, key)
	delete(merged.Entries, key)
	if err := prov.Delete(ctx, itemObjectKey(key)); err != nil {
		s.logger.Debug().
			Str("func", "syncOrchestrator.clearMirror").
			Str("id", id).
			Err(err).
			Msg("could not delete mirror object, will retry next run")
	}
}

func (s *syncOrchestrator) ForceExportToCloud(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	err := s.forceExport(ctx)
	if err != nil {
		s.setState(models.SyncError)
		return err
	}
	s.setState(models.SyncIdle)
	return nil
}

func (s *syncOrchestrator) forceExport(ctx context.Context) error {
	s.setState(models.SyncApplying)

	prov, err := resolveProvider(s.cfg, s.registry)
	if err != nil {
		return err
	}

	local, err := s.metadata.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("load local metadata: %w", err)
	}

	// Fresh baseline: every live item uploaded, tombstones carried over.
	doc := models.NewMetadataDocument()
	for _, entry := range local.Tombstones() {
		doc.Upsert(entry)
	}

	batches, err := s.localStore.Enumerate(ctx)
	if err != nil {
		return fmt.Errorf("enumerate local items: %w", err)
	}

	for batch := range batches {
		for _, item := range batch.Items {
			entry := models.MetadataEntry{
				ItemID: item.ID,
				Type:   item.Kind,
				Digest: itemDigest(item.Payload),
			}

			data, err := sealItem(s.crypto, item)
			if err == nil {
				err = prov.Upload(ctx, itemObjectKey(item.ID), data, false)
			}
			if err != nil {
				if err := s.skipOrAbort("export", item.ID, err); err != nil {
					return err
				}
				entry.Synced = false
				doc.Upsert(entry)
				continue
			}

			entry.Synced = true
			doc.Upsert(entry)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.persistBaseline(ctx, prov, doc)
}

func (s *syncOrchestrator) ForceImportFromCloud(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	err := s.forceImport(ctx)
	if err != nil {
		s.setState(models.SyncError)
		return err
	}
	s.setState(models.SyncIdle)
	return nil
}

// forceImport adopts the cloud as the source of truth. The local baseline
// is only replaced after every payload has been pulled; a partial import
// leaves the previous baseline untouched.
func (s *syncOrchestrator) forceImport(ctx context.Context) error {
	s.setState(models.SyncApplying)

	prov, err := resolveProvider(s.cfg, s.registry)
	if err != nil {
		return err
	}

	cloud, err := s.loadCloudDocument(ctx, prov)
	if err != nil {
		return fmt.Errorf("load cloud metadata: %w", err)
	}

	adopted := cloud.Clone()
	for id, entry := range cloud.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Deleted {
			if _, err := s.localStore.Delete(ctx, id, entry.Type, store.DeleteOptions{SuppressTombstone: true}); err != nil && !errors.Is(err, store.ErrItemNotFound) {
				return fmt.Errorf("import delete %q: %w", id, err)
			}
			continue
		}

		data, err := prov.Download(ctx, itemObjectKey(id), false)
		if err != nil {
			return fmt.Errorf("import download %q: %w", id, err)
		}
		item, err := openItem(s.crypto, id, entry.Type, data)
		if err != nil {
			return fmt.Errorf("import decrypt %q: %w", id, err)
		}
		if err := s.localStore.Put(ctx, item); err != nil {
			return fmt.Errorf("import materialize %q: %w", id, err)
		}

		entry.Synced = true
		entry.Digest = itemDigest(item.Payload)
		adopted.Upsert(entry)
	}

	adopted.UpdatedAt = time.Now().UTC()
	if err := s.metadata.SaveDocument(ctx, adopted); err != nil {
		return fmt.Errorf("adopt cloud baseline: %w", err)
	}

	if err := s.settings.SetSetting(ctx, config.KeyLastSyncAt, adopted.UpdatedAt.Format(time.RFC3339)); err != nil {
		s.logger.Warn().
			Str("func", "syncOrchestrator.forceImport").
			Err(err).
			Msg("failed to stamp last sync time")
	}
	return nil
}

func (s *syncOrchestrator) Diagnostics(ctx context.Context) (models.Diagnostics, error) {
	diag := models.Diagnostics{
		State:  s.State(),
		Leader: s.isLeader(),
	}

	estimate, err := s.localStore.EstimateSize(ctx)
	if err != nil {
		return models.Diagnostics{}, fmt.Errorf("estimate local dataset: %w", err)
	}
	diag.LocalItemCount = estimate.ItemCount
	diag.ExcludedCount = estimate.ExcludedCount

	local, err := s.metadata.LoadDocument(ctx)
	if err != nil {
		return models.Diagnostics{}, fmt.Errorf("load local metadata: %w", err)
	}
	diag.LocalMetadataCount = len(local.Entries)

	// Provider checks are best effort; diagnostics must work offline.
	if prov, err := resolveProvider(s.cfg, s.registry); err == nil {
		diag.ProviderReachable = prov.Verify(ctx) == nil
		if cloud, err := s.loadCloudDocument(ctx, prov); err == nil {
			diag.CloudMetadataCount = len(cloud.Entries)
		} else {
			s.logger.Debug().
				Str("func", "syncOrchestrator.Diagnostics").
				Err(err).
				Msg("cloud metadata unavailable")
		}
	}

	if stamp, err := s.settings.GetSetting(ctx, config.KeyLastSyncAt); err == nil {
		if at, err := time.Parse(time.RFC3339, stamp); err == nil {
			diag.LastSyncAt = &at
		}
	}

	return diag, nil
}

func (s *syncOrchestrator) PurgeTombstone(ctx context.Context, id string) error {
	local, err := s.metadata.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("load local metadata: %w", err)
	}

	entry, ok := local.Entry(id)
	if !ok || !entry.Deleted {
		return fmt.Errorf("id %q: %w", id, ErrTombstoneNotFound)
	}

	delete(local.Entries, id)
	if err := s.metadata.SaveDocument(ctx, local); err != nil {
		return fmt.Errorf("persist purge: %w", err)
	}
	_ = s.settings.DeleteSetting(ctx, config.KeyTombstonePrefix+id)

	// Push the purge to the shared document so peers stop replaying it.
	prov, err := resolveProvider(s.cfg, s.registry)
	if err != nil {
		return nil // no provider yet, the purge stays local
	}
	cloud, err := s.loadCloudDocument(ctx, prov)
	if err != nil {
		s.logger.Warn().
			Str("func", "syncOrchestrator.PurgeTombstone").
			Str("id", id).
			Err(err).
			Msg("purge not propagated, cloud metadata unavailable")
		return nil
	}
	if _, ok := cloud.Entry(id); !ok {
		return nil
	}
	delete(cloud.Entries, id)
	cloud.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(withoutDigests(cloud))
	if err != nil {
		return fmt.Errorf("encode cloud metadata: %w", err)
	}
	if err := prov.Upload(ctx, metadataObjectKey, payload, true); err != nil {
		s.logger.Warn().
			Str("func", "syncOrchestrator.PurgeTombstone").
			Str("id", id).
			Err(err).
			Msg("purge not propagated, upload failed")
	}
	return nil
}

func (s *syncOrchestrator) RestoreTombstones(ctx context.Context, ids []string) error {
	local, err := s.metadata.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("load local metadata: %w", err)
	}

	restored := 0
	for _, id := range ids {
		if _, ok := local.Restore(id); ok {
			restored++
		}
	}
	if restored == 0 {
		return ErrTombstoneNotFound
	}

	if err := s.metadata.SaveDocument(ctx, local); err != nil {
		return fmt.Errorf("persist restore: %w", err)
	}

	s.logger.Info().
		Str("func", "syncOrchestrator.RestoreTombstones").
		Int("restored", restored).
		Msg("tombstones restored, payloads upload on next sync")
	return nil
}

// itemDigest fingerprints a payload for local change detection.
func itemDigest(payload []byte) string {
	return utils.Digest(payload)
}
