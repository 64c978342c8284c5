package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/provider"
	"github.com/MKhiriev/go-vault-sync/models"
)

// Cloud object layout shared by the orchestrator and the backup manager.
const (
	metadataObjectKey = "metadata.json"
	itemKeyPrefix     = "items/"
)

// itemEnvelope is the plaintext form of a settings or record payload before
// sealing. Carrying the id and kind inside the ciphertext lets a restore
// detect an object that was moved or renamed in the cloud.
type itemEnvelope struct {
	ID      string          `json:"id"`
	Kind    models.ItemKind `json:"kind"`
	Payload []byte          `json:"payload"`
}

// sealItem encrypts an item for upload. Blobs skip the JSON envelope.
func sealItem(cr crypto.Service, item models.Item) ([]byte, error) {
	if item.Kind == models.KindBlob {
		return cr.EncryptBytes(item.Payload)
	}
	return cr.Encrypt(itemEnvelope{ID: item.ID, Kind: item.Kind, Payload: item.Payload}, item.ID)
}

// openItem decrypts a downloaded object into an item. kind comes from the
// metadata entry; for enveloped payloads the embedded id and kind win.
func openItem(cr crypto.Service, id string, kind models.ItemKind, data []byte) (models.Item, error) {
	if kind == models.KindBlob {
		plain, err := cr.DecryptBytes(data)
		if err != nil {
			return models.Item{}, err
		}
		return models.Item{ID: id, Kind: kind, Payload: plain, SizeEstimate: int64(len(plain))}, nil
	}

	var env itemEnvelope
	if err := cr.Decrypt(data, &env); err != nil {
		return models.Item{}, err
	}
	if env.ID == "" {
		env.ID = id
	}
	if env.Kind == "" {
		env.Kind = kind
	}
	return models.Item{ID: env.ID, Kind: env.Kind, Payload: env.Payload, SizeEstimate: int64(len(env.Payload))}, nil
}

// itemObjectKey maps an item id to its cloud payload object key.
func itemObjectKey(id string) string {
	return itemKeyPrefix + id
}

// resolveProvider returns the configured active backend, initialized or not.
func resolveProvider(cfg *config.Manager, registry *provider.Registry) (provider.Provider, error) {
	name := cfg.Get(config.KeyProviderName)
	if name == "" {
		return nil, ErrNoProviderSelected
	}

	prov, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("resolve active provider: %w", err)
	}
	return prov, nil
}
