package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

type metadataRepository struct {
	settings SettingsRepository
	logger   *logger.Logger
}

// NewMetadataRepository persists the metadata document as a single settings
// row under the agent's namespace, so it rides the same transaction
// machinery as every other setting and is excluded from sync by the
// namespace rule.
func NewMetadataRepository(settings SettingsRepository, logger *logger.Logger) MetadataRepository {
	return &metadataRepository{
		settings: settings,
		logger:   logger,
	}
}

func (r *metadataRepository) LoadDocument(ctx context.Context) (*models.MetadataDocument, error) {
	raw, err := r.settings.GetSetting(ctx, config.KeyMetadata)
	if errors.Is(err, ErrSettingNotFound) {
		return models.NewMetadataDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load metadata document: %w", err)
	}

	doc := models.NewMetadataDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		r.logger.Warn().
			Str("func", "metadataRepository.LoadDocument").
			Err(err).
			Msg("stored metadata document is unreadable, starting from empty")
		return models.NewMetadataDocument(), nil
	}

	return doc, nil
}

func (r *metadataRepository) SaveDocument(ctx context.Context, doc *models.MetadataDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode metadata document: %w", err)
	}

	if err := r.settings.SetSetting(ctx, config.KeyMetadata, string(payload)); err != nil {
		return fmt.Errorf("save metadata document: %w", err)
	}
	return nil
}
