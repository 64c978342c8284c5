// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package election

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// memoryLeaseStore keeps the claim in memory for tests.
type memoryLeaseStore struct {
	mu      sync.Mutex
	claim   Claim
	exists  bool
	readErr error
}

func (s *memoryLeaseStore) Read(ctx context.Context) (Claim, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return Claim{}, false, s.readErr
	}
	return s.claim, s.exists, nil
}

func (s *memoryLeaseStore) Write(ctx context.Context, claim Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim = claim
	s.exists = true
	return nil
}

func (s *memoryLeaseStore) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim = Claim{}
	s.exists = false
	return nil
}

func (s *memoryLeaseStore) current() (Claim, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claim, s.exists
}

func TestElectFirstSessionBecomesLeader(t *testing.T) {
	store := &memoryLeaseStore{}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	e := NewElector(store, "session-1", clock, logger.Nop())
	e.Elect(ctx)
	defer e.Resign(ctx)

	if !e.IsLeader() {
		t.Fatal("first session should win an uncontested election")
	}

	claim, exists := store.current()
	if !exists || claim.HolderID != "session-1" {
		t.Fatalf("claim not written: %+v exists=%v", claim, exists)
	}
}

func TestElectSecondSessionFollows(t *testing.T) {
	store := &memoryLeaseStore{}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	leader := NewElector(store, "session-1", clock, logger.Nop())
	leader.Elect(ctx)
	defer leader.Resign(ctx)

	follower := NewElector(store, "session-2", clock, logger.Nop())
	follower.Elect(ctx)
	defer follower.Resign(ctx)

	if follower.IsLeader() {
		t.Fatal("second session must not steal a fresh claim")
	}

	claim, _ := store.current()
	if claim.HolderID != "session-1" {
		t.Fatalf("claim holder changed to %q", claim.HolderID)
	}
}

func TestElectStealsExpiredClaim(t *testing.T) {
	store := &memoryLeaseStore{}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	// A claim whose heartbeat stopped longer ago than the TTL belongs to a
	// dead session and must be stolen.
	store.claim = Claim{HolderID: "dead-session", HeartbeatAt: clock.Now().Add(-20 * time.Second)}
	store.exists = true

	e := NewElector(store, "session-2", clock, logger.Nop())
	e.Elect(ctx)
	defer e.Resign(ctx)

	if !e.IsLeader() {
		t.Fatal("expired claim should be stolen")
	}
	claim, _ := store.current()
	if claim.HolderID != "session-2" {
		t.Fatalf("claim holder is %q, want session-2", claim.HolderID)
	}
}

func TestResignReleasesClaim(t *testing.T) {
	store := &memoryLeaseStore{}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	e := NewElector(store, "session-1", clock, logger.Nop())
	e.Elect(ctx)
	if !e.IsLeader() {
		t.Fatal("expected leadership before resigning")
	}

	e.Resign(ctx)

	if e.IsLeader() {
		t.Fatal("resigned elector still reports leadership")
	}
	if _, exists := store.current(); exists {
		t.Fatal("claim not removed on resign")
	}

	// Another session can now win immediately.
	successor := NewElector(store, "session-2", clock, logger.Nop())
	successor.Elect(ctx)
	defer successor.Resign(ctx)
	if !successor.IsLeader() {
		t.Fatal("successor should win after the claim is released")
	}
}

func TestTransitionCallbacksFireOnChangeOnly(t *testing.T) {
	store := &memoryLeaseStore{}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	e := NewElector(store, "session-1", clock, logger.Nop())

	var mu sync.Mutex
	var became, lost int
	e.OnBecameLeader(func() { mu.Lock(); became++; mu.Unlock() })
	e.OnBecameFollower(func() { mu.Lock(); lost++; mu.Unlock() })

	e.Elect(ctx)
	e.Resign(ctx)

	mu.Lock()
	defer mu.Unlock()
	if became != 1 {
		t.Fatalf("leader callback fired %d times, want 1", became)
	}
	if lost != 1 {
		t.Fatalf("follower callback fired %d times, want 1", lost)
	}
}

func TestElectDemotesOnStoreFailure(t *testing.T) {
	store := &memoryLeaseStore{readErr: errors.New("disk gone")}
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	e := NewElector(store, "session-1", clock, logger.Nop())
	e.Elect(ctx)
	defer e.Resign(ctx)

	if e.IsLeader() {
		t.Fatal("a session that cannot read the claim must not lead")
	}
}
