package election

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func TestFileLeaseStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leader.claim")
	store := NewFileLeaseStore(path, logger.Nop())
	ctx := context.Background()

	if _, exists, err := store.Read(ctx); err != nil || exists {
		t.Fatalf("fresh store: exists=%v err=%v", exists, err)
	}

	want := Claim{HolderID: "session-1", HeartbeatAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
	if err := store.Write(ctx, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, exists, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !exists {
		t.Fatal("claim missing after write")
	}
	if got.HolderID != want.HolderID || !got.HeartbeatAt.Equal(want.HeartbeatAt) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}

	if err := store.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, exists, _ := store.Read(ctx); exists {
		t.Fatal("claim still present after remove")
	}
	if err := store.Remove(ctx); err != nil {
		t.Fatalf("removing an absent claim should not fail: %v", err)
	}
}

func TestFileLeaseStoreCorruptClaimReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leader.claim")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("seed corrupt claim: %v", err)
	}

	store := NewFileLeaseStore(path, logger.Nop())
	_, exists, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("corrupt claim must not error: %v", err)
	}
	if exists {
		t.Fatal("corrupt claim must read as absent so it can be stolen")
	}
}
