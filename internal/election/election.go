// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package election decides which of several concurrently running agent
// sessions owns the background work. One claim with a TTL is shared
// through a LeaseStore; the session that holds a fresh claim is the
// leader, everyone else follows and re-checks on every election tick.
package election

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

const (
	// defaultTTL is how long a claim stays valid without a heartbeat.
	defaultTTL = 15 * time.Second

	// defaultHeartbeat is the claim refresh and re-check period. Kept well
	// under the TTL so one missed beat does not lose leadership.
	defaultHeartbeat = 5 * time.Second
)

// Claim is the shared leader record.
type Claim struct {
	HolderID    string    `json:"holder_id"`
	HeartbeatAt time.Time `json:"heartbeat_at"`
}

// LeaseStore persists the claim somewhere every session can reach.
type LeaseStore interface {
	// Read returns the current claim and whether one exists. A corrupt
	// claim reads as absent so it can be stolen.
	Read(ctx context.Context) (Claim, bool, error)

	// Write replaces the claim atomically.
	Write(ctx context.Context, claim Claim) error

	// Remove deletes the claim. Removing an absent claim is not an error.
	Remove(ctx context.Context) error
}

// Elector runs the election loop for one session.
type Elector struct {
	store     LeaseStore
	clock     clockwork.Clock
	logger    *logger.Logger
	holderID  string
	ttl       time.Duration
	heartbeat time.Duration

	mu         sync.Mutex
	leader     bool
	onLeader   []func()
	onFollower []func()
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewElector builds an elector for the session identified by holderID.
// A nil clock means the real one.
func NewElector(store LeaseStore, holderID string, clock clockwork.Clock, log *logger.Logger) *Elector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Elector{
		store:     store,
		clock:     clock,
		logger:    log,
		holderID:  holderID,
		ttl:       defaultTTL,
		heartbeat: defaultHeartbeat,
	}
}

// OnBecameLeader registers a callback fired on the follower->leader
// transition. Must be called before Elect.
func (e *Elector) OnBecameLeader(cb func()) {
	e.mu.Lock()
	e.onLeader = append(e.onLeader, cb)
	e.mu.Unlock()
}

// OnBecameFollower registers a callback fired on the leader->follower
// transition. Must be called before Elect.
func (e *Elector) OnBecameFollower(cb func()) {
	e.mu.Lock()
	e.onFollower = append(e.onFollower, cb)
	e.mu.Unlock()
}

// IsLeader reports whether this session currently holds the claim.
func (e *Elector) IsLeader() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leader
}

// Elect runs one immediate election round and then keeps electing on the
// heartbeat period until ctx ends or Resign is called.
func (e *Elector) Elect(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	e.mu.Lock()
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	e.tryAcquire(loopCtx)

	go func() {
		defer close(done)
		ticker := e.clock.NewTicker(e.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.Chan():
				e.tryAcquire(loopCtx)
			}
		}
	}()
}

// tryAcquire refreshes our claim, steals an expired one, or follows.
func (e *Elector) tryAcquire(ctx context.Context) {
	claim, exists, err := e.store.Read(ctx)
	if err != nil {
		e.logger.Warn().
			Str("func", "Elector.tryAcquire").
			Err(err).
			Msg("failed to read leader claim")
		e.transition(false)
		return
	}

	now := e.clock.Now()
	ours := exists && claim.HolderID == e.holderID
	expired := !exists || now.Sub(claim.HeartbeatAt) >= e.ttl

	if !ours && !expired {
		e.transition(false)
		return
	}

	if err := e.store.Write(ctx, Claim{HolderID: e.holderID, HeartbeatAt: now}); err != nil {
		e.logger.Warn().
			Str("func", "Elector.tryAcquire").
			Err(err).
			Msg("failed to write leader claim")
		e.transition(false)
		return
	}

	e.transition(true)
}

// transition flips the leadership flag, firing callbacks only on a change.
func (e *Elector) transition(leader bool) {
	e.mu.Lock()
	changed := e.leader != leader
	e.leader = leader
	var callbacks []func()
	if changed {
		if leader {
			callbacks = append(callbacks, e.onLeader...)
		} else {
			callbacks = append(callbacks, e.onFollower...)
		}
	}
	e.mu.Unlock()

	if changed {
		e.logger.Info().
			Str("func", "Elector.transition").
			Str("holder_id", e.holderID).
			Bool("leader", leader).
			Msg("leadership changed")
	}
	for _, cb := range callbacks {
		cb()
	}
}

// Resign stops the election loop and releases the claim if held. Intended
// for shutdown; a resigned elector does not rejoin the race.
func (e *Elector) Resign(ctx context.Context) {
	e.mu.Lock()
	cancel := e.cancel
	done := e.done
	wasLeader := e.leader
	e.cancel = nil
	e.done = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	if wasLeader {
		if err := e.store.Remove(ctx); err != nil {
			e.logger.Warn().
				Str("func", "Elector.Resign").
				Err(err).
				Msg("failed to remove leader claim")
		}
	}
	e.transition(false)
}
