package election

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// fileLeaseStore keeps the claim in a JSON file inside the agent data
// directory, which every local session shares. Writes go through a temp
// file plus rename so readers never observe a half-written claim.
type fileLeaseStore struct {
	path   string
	logger *logger.Logger
}

// NewFileLeaseStore builds the store for the claim file at path.
func NewFileLeaseStore(path string, log *logger.Logger) LeaseStore {
	return &fileLeaseStore{path: path, logger: log}
}

func (s *fileLeaseStore) Read(_ context.Context) (Claim, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Claim{}, false, nil
	}
	if err != nil {
		return Claim{}, false, fmt.Errorf("read leader claim: %w", err)
	}

	var claim Claim
	if err := json.Unmarshal(data, &claim); err != nil {
		// A corrupt claim reads as absent so a healthy session can steal it.
		s.logger.Warn().
			Str("func", "fileLeaseStore.Read").
			Err(err).
			Msg("corrupt leader claim, treating as absent")
		return Claim{}, false, nil
	}

	return claim, true, nil
}

func (s *fileLeaseStore) Write(_ context.Context, claim Claim) error {
	payload, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("encode leader claim: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create claim dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".claim-*")
	if err != nil {
		return fmt.Errorf("create temp claim: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp claim: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp claim: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish leader claim: %w", err)
	}
	return nil
}

func (s *fileLeaseStore) Remove(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove leader claim: %w", err)
	}
	return nil
}
