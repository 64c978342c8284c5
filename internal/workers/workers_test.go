package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
)

type cfgStore struct {
	values map[string]string
}

func (s *cfgStore) ListSettings(context.Context, string) (map[string]string, error) {
	return s.values, nil
}

func (s *cfgStore) SetSettings(_ context.Context, values map[string]string) error {
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *cfgStore) DeleteSetting(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func newTestConfig(t *testing.T, autoSync bool) *config.Manager {
	t.Helper()
	values := make(map[string]string)
	if autoSync {
		values[config.KeyAutoSync] = "true"
	}
	cfg := config.NewManager(&cfgStore{values: values}, crypto.NewObfuscator(), logger.Nop())
	require.NoError(t, cfg.Load(context.Background()))
	return cfg
}

func newTestQueue(t *testing.T) *queue.Queue {
	t.Helper()
	ops := queue.New(logger.Nop())
	ops.Start(context.Background())
	t.Cleanup(ops.Stop)
	return ops
}

func TestSyncWorkerTickRunsScheduledSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := mock.NewMockOrchestrator(ctrl)
	orch.EXPECT().PerformFullSync(gomock.Any()).Return(nil)

	w := NewSyncWorker(orch, newTestConfig(t, true), newTestQueue(t), func() bool { return true }, logger.Nop()).(*syncWorker)
	w.tick(context.Background())
}

func TestSyncWorkerTickRequiresLeadership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: a follower must never enqueue a scheduled sync.
	orch := mock.NewMockOrchestrator(ctrl)

	w := NewSyncWorker(orch, newTestConfig(t, true), newTestQueue(t), func() bool { return false }, logger.Nop()).(*syncWorker)
	w.tick(context.Background())
}

func TestSyncWorkerTickRequiresAutoSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := mock.NewMockOrchestrator(ctrl)

	w := NewSyncWorker(orch, newTestConfig(t, false), newTestQueue(t), func() bool { return true }, logger.Nop()).(*syncWorker)
	w.tick(context.Background())
}

func TestBackupWorkerTickChecksDailyBackup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backups := mock.NewMockBackupManager(ctrl)
	backups.EXPECT().CheckAndPerformDailyBackup(gomock.Any()).Return(nil)

	w := NewBackupWorker(backups, newTestQueue(t), func() bool { return true }, logger.Nop()).(*backupWorker)
	w.tick(context.Background())
}

func TestBackupWorkerTickRequiresLeadership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backups := mock.NewMockBackupManager(ctrl)

	w := NewBackupWorker(backups, newTestQueue(t), func() bool { return false }, logger.Nop()).(*backupWorker)
	w.tick(context.Background())
}

func TestWorkersStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := mock.NewMockOrchestrator(ctrl)
	backups := mock.NewMockBackupManager(ctrl)
	ops := newTestQueue(t)

	all := NewWorkers(
		NewSyncWorker(orch, newTestConfig(t, false), ops, func() bool { return false }, logger.Nop()),
		NewBackupWorker(backups, ops, func() bool { return false }, logger.Nop()),
	)

	all.Start(context.Background())
	all.Stop()

	// Stopping again, or stopping a never-started worker, must not block.
	all.Stop()
	assert.NotPanics(t, func() { NewWorkers().Stop() })
}
