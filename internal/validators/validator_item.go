package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	FieldID      = "id"
	FieldKind    = "kind"
	FieldPayload = "payload"
)

var allowedItemKinds = []models.ItemKind{
	models.KindSetting,
	models.KindRecord,
	models.KindBlob,
}

// ItemValidator checks items before they are written into the local store.
// Items arrive from three paths (sync downloads, force import, backup
// restore) and all of them pass decrypted remote content through here.
type ItemValidator struct {
}

func NewItemValidator() Validator {
	return &ItemValidator{}
}

func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Item:
		return v.validateItem(ctx, value, fields...)
	case *models.Item:
		return v.validateItem(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateItem(_ context.Context, item models.Item, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldKind, FieldPayload}
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if item.ID == "" {
				return ErrEmptyID
			}
		case FieldKind:
			if !isValidItemKind(item.Kind) {
				return fmt.Errorf("%w: %q", ErrInvalidKind, item.Kind)
			}
		case FieldPayload:
			if len(item.Payload) == 0 {
				return ErrEmptyPayload
			}
			if item.Kind == models.KindRecord && !json.Valid(item.Payload) {
				return ErrMalformedPayload
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func isValidItemKind(kind models.ItemKind) bool {
	for _, k := range allowedItemKinds {
		if kind == k {
			return true
		}
	}
	return false
}
