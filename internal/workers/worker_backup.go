// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
)

// backupCheckInterval is how often the worker asks the backup manager
// whether a daily backup is due. The manager itself enforces the daily
// spacing; checking hourly just bounds how late a backup can start.
const backupCheckInterval = time.Hour

// backupWorker triggers the daily backup check on the leader session.
type backupWorker struct {
	backups  service.BackupManager
	ops      *queue.Queue
	isLeader func() bool
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBackupWorker builds the scheduled backup worker.
func NewBackupWorker(backups service.BackupManager, ops *queue.Queue, isLeader func() bool, log *logger.Logger) Worker {
	return &backupWorker{
		backups:  backups,
		ops:      ops,
		isLeader: isLeader,
		logger:   log,
	}
}

func (w *backupWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(backupCheckInterval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.tick(jobCtx)
			}
		}
	}()
}

func (w *backupWorker) tick(ctx context.Context) {
	if !w.isLeader() {
		return
	}

	result := w.ops.Add("daily-backup", w.backups.CheckAndPerformDailyBackup, queue.PriorityLow)
	select {
	case err := <-result:
		if err != nil {
			w.logger.Warn().
				Str("func", "backupWorker.tick").
				Err(err).
				Msg("scheduled backup check failed")
		}
	case <-ctx.Done():
	}
}

func (w *backupWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
