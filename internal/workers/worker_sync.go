// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
)

// syncWorker runs the scheduled full sync. Only the leader session ticks,
// auto-sync must be enabled, and every run goes through the operation
// queue at low priority so manual work overtakes it. Scheduled failures
// are logged, never surfaced.
type syncWorker struct {
	orchestrator service.Orchestrator
	cfg          *config.Manager
	ops          *queue.Queue
	isLeader     func() bool
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncWorker builds the scheduled sync worker. The job is idle until
// Start is called.
func NewSyncWorker(orchestrator service.Orchestrator, cfg *config.Manager, ops *queue.Queue, isLeader func() bool, log *logger.Logger) Worker {
	return &syncWorker{
		orchestrator: orchestrator,
		cfg:          cfg,
		ops:          ops,
		isLeader:     isLeader,
		logger:       log,
	}
}

// Start stops any previously running job, then launches a goroutine that
// enqueues a full sync on every interval tick. The interval is re-read
// from configuration each tick, so changes apply without a restart.
func (w *syncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()

		interval := w.cfg.SyncInterval()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if next := w.cfg.SyncInterval(); next != interval {
					interval = next
					t.Reset(interval)
				}
				w.tick(jobCtx)
			}
		}
	}()
}

func (w *syncWorker) tick(ctx context.Context) {
	if !w.isLeader() || !w.cfg.AutoSync() {
		return
	}

	result := w.ops.Add("full-sync", w.orchestrator.PerformFullSync, queue.PriorityLow)
	select {
	case err := <-result:
		if err != nil {
			w.logger.Warn().
				Str("func", "syncWorker.tick").
				Err(err).
				Msg("scheduled sync failed")
		}
	case <-ctx.Done():
	}
}

// Stop cancels the background goroutine and blocks until it exits. Safe to
// call when the job is not running.
func (w *syncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
