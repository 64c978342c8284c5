package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository builds the repository over the settings table. It
// also satisfies the configuration manager's settings store contract.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *settingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, getSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("key %q: %w", key, ErrSettingNotFound)
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.GetSetting").
			Str("key", key).
			Msg("failed to query setting")
		return "", fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *settingsRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, upsertSetting, key, value)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.SetSetting").
			Str("key", key).
			Msg("failed to upsert setting")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

// SetSettings writes every pair in one transaction. Either all pairs are
// persisted or none.
func (r *settingsRepository) SetSettings(ctx context.Context, values map[string]string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.SetSettings").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, upsertSetting, key, value); err != nil {
			r.logger.Err(err).
				Str("func", "settingsRepository.SetSettings").
				Str("key", key).
				Msg("failed to upsert setting in transaction")
			return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}
	return nil
}

func (r *settingsRepository) DeleteSetting(ctx context.Context, key string) error {
	_, err := r.DB.ExecContext(ctx, deleteSetting, key)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.DeleteSetting").
			Str("key", key).
			Msg("failed to delete setting")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (r *settingsRepository) ListSettings(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, listSettingsByPrefix, prefix)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.ListSettings").
			Str("prefix", prefix).
			Msg("failed to query settings by prefix")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanningRow, err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return out, nil
}

// ListSettingsPage returns one page of settings as items, ordered by key.
func (r *settingsRepository) ListSettingsPage(ctx context.Context, limit, offset int) ([]models.Item, error) {
	query, args, err := sq.Select("key", "value").
		From("settings").
		OrderBy("key").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.ListSettingsPage").
			Int("offset", offset).
			Msg("failed to query settings page")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			r.logger.Warn().
				Str("func", "settingsRepository.ListSettingsPage").
				Err(err).
				Msg("skipping corrupt settings row")
			continue
		}
		items = append(items, models.Item{
			ID:           key,
			Kind:         models.KindSetting,
			Payload:      []byte(value),
			SizeEstimate: int64(len(value)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return items, nil
}

func (r *settingsRepository) StatSettings(ctx context.Context) ([]SettingStat, error) {
	rows, err := r.DB.QueryContext(ctx, statSettings)
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.StatSettings").
			Msg("failed to query settings stats")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var stats []SettingStat
	for rows.Next() {
		var s SettingStat
		if err := rows.Scan(&s.Key, &s.Bytes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanningRow, err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return stats, nil
}
