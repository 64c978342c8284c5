package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

// recordSizeFactor converts a field count into an estimated byte size.
// Records are never fully serialized for sizing.
const recordSizeFactor = 64

type recordsRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordsRepository builds the repository over the records table, which
// holds both structured records and binary blobs.
func NewRecordsRepository(db *DB, logger *logger.Logger) RecordsRepository {
	return &recordsRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordsRepository) GetRecord(ctx context.Context, id string, kind models.ItemKind) (models.Item, error) {
	var item models.Item
	var fieldCount int

	err := r.DB.QueryRowContext(ctx, getRecord, id, string(kind)).
		Scan(&item.ID, &item.Kind, &item.Payload, &fieldCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("id %q kind %q: %w", id, kind, ErrItemNotFound)
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "recordsRepository.GetRecord").
			Str("id", id).
			Msg("failed to query record")
		return models.Item{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	item.SizeEstimate = estimateItemSize(item.Kind, fieldCount, int64(len(item.Payload)))
	return item, nil
}

func (r *recordsRepository) SaveRecord(ctx context.Context, item models.Item) error {
	fieldCount := 0
	if item.Kind == models.KindRecord {
		fieldCount = countTopLevelFields(item.Payload)
	}

	_, err := r.DB.ExecContext(ctx, upsertRecord, item.ID, string(item.Kind), item.Payload, fieldCount)
	if err != nil {
		r.logger.Err(err).
			Str("func", "recordsRepository.SaveRecord").
			Str("id", item.ID).
			Str("kind", string(item.Kind)).
			Msg("failed to upsert record")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordsRepository) DeleteRecord(ctx context.Context, id string, kind models.ItemKind) error {
	_, err := r.DB.ExecContext(ctx, deleteRecord, id, string(kind))
	if err != nil {
		r.logger.Err(err).
			Str("func", "recordsRepository.DeleteRecord").
			Str("id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

// ListRecordsPage returns one page of records as items, ordered by id.
// Corrupt rows are skipped with a warning; they never abort the page.
func (r *recordsRepository) ListRecordsPage(ctx context.Context, limit, offset int) ([]models.Item, error) {
	query, args, err := sq.Select("id", "kind", "payload", "field_count").
		From("records").
		OrderBy("id", "kind").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "recordsRepository.ListRecordsPage").
			Int("offset", offset).
			Msg("failed to query records page")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var fieldCount int
		if err := rows.Scan(&item.ID, &item.Kind, &item.Payload, &fieldCount); err != nil {
			r.logger.Warn().
				Str("func", "recordsRepository.ListRecordsPage").
				Err(err).
				Msg("skipping corrupt record row")
			continue
		}
		item.SizeEstimate = estimateItemSize(item.Kind, fieldCount, int64(len(item.Payload)))
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return items, nil
}

func (r *recordsRepository) StatRecords(ctx context.Context) ([]RecordStat, error) {
	rows, err := r.DB.QueryContext(ctx, statRecords)
	if err != nil {
		r.logger.Err(err).
			Str("func", "recordsRepository.StatRecords").
			Msg("failed to query record stats")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var stats []RecordStat
	for rows.Next() {
		var s RecordStat
		if err := rows.Scan(&s.ID, &s.Kind, &s.FieldCount, &s.Bytes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanningRow, err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return stats, nil
}

// estimateItemSize implements the sizing heuristic: blobs by exact byte
// length, records by field count times a constant.
func estimateItemSize(kind models.ItemKind, fieldCount int, payloadBytes int64) int64 {
	if kind == models.KindRecord {
		return int64(fieldCount) * recordSizeFactor
	}
	return payloadBytes
}

// countTopLevelFields counts the top-level keys of a JSON object payload.
// Non-object payloads count as a single field.
func countTopLevelFields(payload []byte) int {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return 1
	}
	return len(fields)
}
