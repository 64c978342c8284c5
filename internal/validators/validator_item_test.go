package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-vault-sync/models"
)

func TestValidateItem(t *testing.T) {
	v := NewItemValidator()
	ctx := context.Background()

	valid := models.Item{ID: "records/1", Kind: models.KindRecord, Payload: []byte(`{"a":1}`)}
	if err := v.Validate(ctx, valid); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if err := v.Validate(ctx, &valid); err != nil {
		t.Fatalf("pointer form rejected: %v", err)
	}

	tests := []struct {
		name string
		item models.Item
		want error
	}{
		{
			name: "empty id",
			item: models.Item{Kind: models.KindSetting, Payload: []byte("x")},
			want: ErrEmptyID,
		},
		{
			name: "unknown kind",
			item: models.Item{ID: "a", Kind: models.ItemKind("widget"), Payload: []byte("x")},
			want: ErrInvalidKind,
		},
		{
			name: "empty payload",
			item: models.Item{ID: "a", Kind: models.KindSetting},
			want: ErrEmptyPayload,
		},
		{
			name: "record payload must be json",
			item: models.Item{ID: "a", Kind: models.KindRecord, Payload: []byte("{broken")},
			want: ErrMalformedPayload,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.Validate(ctx, tc.item); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateSelectedFields(t *testing.T) {
	v := NewItemValidator()
	ctx := context.Background()

	// Only the requested field is checked.
	noPayload := models.Item{ID: "a", Kind: models.KindSetting}
	if err := v.Validate(ctx, noPayload, FieldID, FieldKind); err != nil {
		t.Fatalf("field-scoped validation failed: %v", err)
	}

	if err := v.Validate(ctx, noPayload, "bogus"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestValidateUnsupportedType(t *testing.T) {
	v := NewItemValidator()
	if err := v.Validate(context.Background(), 42); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestBlobPayloadNeedNotBeJSON(t *testing.T) {
	v := NewItemValidator()
	blob := models.Item{ID: "blobs/1", Kind: models.KindBlob, Payload: []byte{0x00, 0x01, 0xff}}
	if err := v.Validate(context.Background(), blob); err != nil {
		t.Fatalf("binary blob rejected: %v", err)
	}
}
