// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store owns all local persistence: the SQLite database, the
// settings and records repositories, and the local store adapter that
// presents a uniform, exclusion-aware surface to the sync engine.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	// singleBatchThreshold is the estimated dataset size above which
	// enumeration switches from one batch to bounded streaming.
	singleBatchThreshold = 8 << 20

	// batchByteLimit caps the cumulative estimated bytes of one streamed
	// batch.
	batchByteLimit = 2 << 20

	// batchItemLimit caps the item count of one streamed batch.
	batchItemLimit = 500

	// pageSize is the row page pulled from a repository per query.
	pageSize = 500

	// batchYieldDelay is the pause between streamed batches, keeping the
	// database responsive to foreground work during large enumerations.
	batchYieldDelay = 50 * time.Millisecond
)

type localStoreAdapter struct {
	settings  SettingsRepository
	records   RecordsRepository
	policy    ExclusionPolicy
	validator validators.Validator
	logger    *logger.Logger
}

// NewLocalStore builds the adapter over both repositories. Every Put goes
// through the validator; downloaded and restored content is not trusted
// to be well-formed.
func NewLocalStore(settings SettingsRepository, records RecordsRepository, policy ExclusionPolicy, validator validators.Validator, logger *logger.Logger) LocalStore {
	return &localStoreAdapter{
		settings:  settings,
		records:   records,
		policy:    policy,
		validator: validator,
		logger:    logger,
	}
}

func (a *localStoreAdapter) EstimateSize(ctx context.Context) (models.SizeEstimate, error) {
	var estimate models.SizeEstimate

	settingStats, err := a.settings.StatSettings(ctx)
	if err != nil {
		return models.SizeEstimate{}, fmt.Errorf("estimate settings: %w", err)
	}
	for _, s := range settingStats {
		if a.policy.ShouldExclude(s.Key) {
			estimate.ExcludedCount++
			continue
		}
		estimate.ItemCount++
		estimate.TotalBytes += s.Bytes
	}

	recordStats, err := a.records.StatRecords(ctx)
	if err != nil {
		return models.SizeEstimate{}, fmt.Errorf("estimate records: %w", err)
	}
	for _, s := range recordStats {
		if a.policy.ShouldExclude(s.ID) {
			estimate.ExcludedCount++
			continue
		}
		estimate.ItemCount++
		estimate.TotalBytes += estimateItemSize(s.Kind, s.FieldCount, s.Bytes)
	}

	return estimate, nil
}

func (a *localStoreAdapter) Enumerate(ctx context.Context) (<-chan models.Batch, error) {
	estimate, err := a.EstimateSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("size estimate before enumeration: %w", err)
	}

	streamed := estimate.TotalBytes > singleBatchThreshold
	out := make(chan models.Batch, 1)

	go func() {
		defer close(out)

		var batch models.Batch
		var batchBytes int64

		flush := func() bool {
			if len(batch.Items) == 0 {
				return true
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return false
			}
			batch = models.Batch{}
			batchBytes = 0

			if streamed {
				select {
				case <-time.After(batchYieldDelay):
				case <-ctx.Done():
					return false
				}
			}
			return true
		}

		emit := func(item models.Item) bool {
			batch.Items = append(batch.Items, item)
			batchBytes += item.SizeEstimate
			if streamed && (batchBytes >= batchByteLimit || len(batch.Items) >= batchItemLimit) {
				return flush()
			}
			return true
		}

		pagers := []func(context.Context, int, int) ([]models.Item, error){
			a.settings.ListSettingsPage,
			a.records.ListRecordsPage,
		}
		for _, page := range pagers {
			for offset := 0; ; offset += pageSize {
				items, err := page(ctx, pageSize, offset)
				if err != nil {
					a.logger.Err(err).
						Str("func", "localStoreAdapter.Enumerate").
						Msg("enumeration page failed, aborting stream")
					return
				}
				for _, item := range items {
					if a.policy.ShouldExclude(item.ID) {
						continue
					}
					if item.Kind != models.KindSetting {
						if err := a.validator.Validate(ctx, item, validators.FieldPayload); err != nil {
							a.logger.Warn().
								Str("func", "localStoreAdapter.Enumerate").
								Str("id", item.ID).
								Err(err).
								Msg("skipping corrupt row")
							continue
						}
					}
					if !emit(item) {
						return
					}
				}
				if len(items) < pageSize {
					break
				}
			}
		}

		flush()
	}()

	return out, nil
}

func (a *localStoreAdapter) Get(ctx context.Context, id string, kind models.ItemKind) (models.Item, error) {
	if a.policy.ShouldExclude(id) {
		return models.Item{}, fmt.Errorf("id %q: %w", id, ErrItemExcluded)
	}

	if kind == models.KindSetting {
		value, err := a.settings.GetSetting(ctx, id)
		if err != nil {
			return models.Item{}, err
		}
		return models.Item{
			ID:           id,
			Kind:         models.KindSetting,
			Payload:      []byte(value),
			SizeEstimate: int64(len(value)),
		}, nil
	}

	item, err := a.records.GetRecord(ctx, id, kind)
	if err != nil {
		return models.Item{}, err
	}
	if err := a.validator.Validate(ctx, item, validators.FieldPayload); err != nil {
		return models.Item{}, fmt.Errorf("id %q: %w", id, ErrCorruptItem)
	}
	return item, nil
}

func (a *localStoreAdapter) Put(ctx context.Context, item models.Item) error {
	if err := a.validator.Validate(ctx, item); err != nil {
		return fmt.Errorf("validate item %q: %w", item.ID, err)
	}
	if item.Kind == models.KindSetting {
		return a.settings.SetSetting(ctx, item.ID, string(item.Payload))
	}
	return a.records.SaveRecord(ctx, item)
}

func (a *localStoreAdapter) Delete(ctx context.Context, id string, kind models.ItemKind, opts DeleteOptions) (bool, error) {
	if kind == models.KindSetting {
		if err := a.settings.DeleteSetting(ctx, id); err != nil {
			return false, err
		}
	} else {
		if err := a.records.DeleteRecord(ctx, id, kind); err != nil {
			return false, err
		}
	}

	if opts.SuppressTombstone {
		return false, nil
	}

	mirror := models.TombstoneMirror{
		Kind:      kind,
		DeletedAt: time.Now().UTC(),
		Source:    models.SourceManual,
	}
	payload, err := json.Marshal(mirror)
	if err != nil {
		return false, fmt.Errorf("encode tombstone marker: %w", err)
	}

	if err := a.settings.SetSetting(ctx, config.KeyTombstonePrefix+id, string(payload)); err != nil {
		return false, fmt.Errorf("write tombstone marker: %w", err)
	}

	a.logger.Debug().
		Str("func", "localStoreAdapter.Delete").
		Str("id", id).
		Str("kind", string(kind)).
		Msg("deletion marker written")

	return true, nil
}
