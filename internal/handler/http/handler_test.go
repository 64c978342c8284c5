// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/models"
)

// ── fakes ───────────────────────────────────────────────────────────────────

type fakeOrchestrator struct {
	performFullSyncFn   func(ctx context.Context) error
	forceExportFn       func(ctx context.Context) error
	forceImportFn       func(ctx context.Context) error
	diagnosticsFn       func(ctx context.Context) (models.Diagnostics, error)
	purgeTombstoneFn    func(ctx context.Context, id string) error
	restoreTombstonesFn func(ctx context.Context, ids []string) error
}

func (f *fakeOrchestrator) PerformFullSync(ctx context.Context) error {
	if f.performFullSyncFn != nil {
		return f.performFullSyncFn(ctx)
	}
	return nil
}

func (f *fakeOrchestrator) ForceExportToCloud(ctx context.Context) error {
	if f.forceExportFn != nil {
		return f.forceExportFn(ctx)
	}
	return nil
}

func (f *fakeOrchestrator) ForceImportFromCloud(ctx context.Context) error {
	if f.forceImportFn != nil {
		return f.forceImportFn(ctx)
	}
	return nil
}

func (f *fakeOrchestrator) Diagnostics(ctx context.Context) (models.Diagnostics, error) {
	if f.diagnosticsFn != nil {
		return f.diagnosticsFn(ctx)
	}
	return models.Diagnostics{}, nil
}

func (f *fakeOrchestrator) PurgeTombstone(ctx context.Context, id string) error {
	if f.purgeTombstoneFn != nil {
		return f.purgeTombstoneFn(ctx, id)
	}
	return nil
}

func (f *fakeOrchestrator) RestoreTombstones(ctx context.Context, ids []string) error {
	if f.restoreTombstonesFn != nil {
		return f.restoreTombstonesFn(ctx, ids)
	}
	return nil
}

func (f *fakeOrchestrator) State() models.SyncState { return models.SyncIdle }

type fakeBackupManager struct {
	createSnapshotFn func(ctx context.Context, name string) (models.BackupEntry, error)
	listBackupsFn    func(ctx context.Context) ([]models.BackupEntry, error)
	restoreFn        func(ctx context.Context, key string) error
	deleteFn         func(ctx context.Context, key string) error
}

func (f *fakeBackupManager) CreateSnapshot(ctx context.Context, name string) (models.BackupEntry, error) {
	if f.createSnapshotFn != nil {
		return f.createSnapshotFn(ctx, name)
	}
	return models.BackupEntry{Name: name}, nil
}

func (f *fakeBackupManager) CheckAndPerformDailyBackup(ctx context.Context) error { return nil }

func (f *fakeBackupManager) ListBackups(ctx context.Context) ([]models.BackupEntry, error) {
	if f.listBackupsFn != nil {
		return f.listBackupsFn(ctx)
	}
	return nil, nil
}

func (f *fakeBackupManager) RestoreFromBackup(ctx context.Context, key string) error {
	if f.restoreFn != nil {
		return f.restoreFn(ctx, key)
	}
	return nil
}

func (f *fakeBackupManager) DeleteBackup(ctx context.Context, key string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, key)
	}
	return nil
}

type fakeSettingsStore struct {
	values map[string]string
}

func (s *fakeSettingsStore) ListSettings(context.Context, string) (map[string]string, error) {
	return s.values, nil
}

func (s *fakeSettingsStore) SetSettings(_ context.Context, values map[string]string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *fakeSettingsStore) DeleteSetting(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

type testHandler struct {
	router http.Handler
	ops    *queue.Queue
	store  *fakeSettingsStore
}

func newTestHandler(t *testing.T, orch service.Orchestrator, backups service.BackupManager) *testHandler {
	t.Helper()

	ops := queue.New(logger.Nop())
	ops.Start(context.Background())
	t.Cleanup(ops.Stop)

	store := &fakeSettingsStore{values: make(map[string]string)}
	cfg := config.NewManager(store, crypto.NewObfuscator(), logger.Nop())
	require.NoError(t, cfg.Load(context.Background()))

	h := NewHandler(orch, backups, ops, cfg, logger.Nop())
	return &testHandler{router: h.Init(), ops: ops, store: store}
}

func (th *testHandler) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

// ── sync endpoints ──────────────────────────────────────────────────────────

func TestSyncNow(t *testing.T) {
	called := false
	orch := &fakeOrchestrator{performFullSyncFn: func(ctx context.Context) error {
		called = true
		return nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/sync/now", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.JSONEq(t, `{"status":"ok","op":"full-sync"}`, rec.Body.String())
}

func TestSyncNowConflict(t *testing.T) {
	orch := &fakeOrchestrator{performFullSyncFn: func(ctx context.Context) error {
		return service.ErrSyncInProgress
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/sync/now", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSyncNowNoProviderSelected(t *testing.T) {
	orch := &fakeOrchestrator{performFullSyncFn: func(ctx context.Context) error {
		return service.ErrNoProviderSelected
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/sync/now", "")
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestSyncNowQueueClosed(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})
	th.ops.Stop()

	rec := th.do(http.MethodPost, "/api/sync/now", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestForceExportRequiresConfirmation(t *testing.T) {
	called := false
	orch := &fakeOrchestrator{forceExportFn: func(ctx context.Context) error {
		called = true
		return nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/sync/export", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgConfirmRequired)
	assert.False(t, called, "destructive operation ran without confirmation")

	rec = th.do(http.MethodPost, "/api/sync/export?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestForceImportRequiresConfirmation(t *testing.T) {
	called := false
	orch := &fakeOrchestrator{forceImportFn: func(ctx context.Context) error {
		called = true
		return nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/sync/import", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.False(t, called)

	rec = th.do(http.MethodPost, "/api/sync/import?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestSetAutoSync(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/autosync", `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", th.store.values[config.KeyAutoSync])

	rec = th.do(http.MethodPost, "/api/autosync", `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "false", th.store.values[config.KeyAutoSync])
}

func TestSetAutoSyncBadJSON(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/autosync", "{nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInvalidJSON)
}

func TestTraceIDHeader(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})

	do := func(inbound string) string {
		req := httptest.NewRequest(http.MethodGet, "/api/diagnostics", nil)
		if inbound != "" {
			req.Header.Set(traceIDHeader, inbound)
		}
		rec := httptest.NewRecorder()
		th.router.ServeHTTP(rec, req)
		return rec.Header().Get(traceIDHeader)
	}

	assert.NotEmpty(t, do(""), "a trace id must be generated when none is supplied")
	assert.Equal(t, "caller-supplied", do("caller-supplied"))

	oversized := strings.Repeat("x", maxTraceIDLength+1)
	got := do(oversized)
	assert.NotEqual(t, oversized, got, "oversized inbound trace ids must be replaced")
	assert.NotEmpty(t, got)
}

// ── backup endpoints ────────────────────────────────────────────────────────

func TestCreateSnapshot(t *testing.T) {
	var gotName string
	backups := &fakeBackupManager{createSnapshotFn: func(ctx context.Context, name string) (models.BackupEntry, error) {
		gotName = name
		return models.BackupEntry{Name: name, Key: "backups/" + name + "-abc", ItemCount: 7}, nil
	}}
	th := newTestHandler(t, &fakeOrchestrator{}, backups)

	rec := th.do(http.MethodPost, "/api/snapshot", `{"name":"pre/release"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pre-release", gotName, "slashes must be stripped from backup names")

	var entry models.BackupEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, 7, entry.ItemCount)
}

func TestCreateSnapshotDefaultName(t *testing.T) {
	var gotName string
	backups := &fakeBackupManager{createSnapshotFn: func(ctx context.Context, name string) (models.BackupEntry, error) {
		gotName = name
		return models.BackupEntry{Name: name}, nil
	}}
	th := newTestHandler(t, &fakeOrchestrator{}, backups)

	rec := th.do(http.MethodPost, "/api/snapshot", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "snapshot", gotName)
}

func TestListBackupsEmpty(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})

	rec := th.do(http.MethodGet, "/api/backups", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRestoreBackup(t *testing.T) {
	var gotKey string
	backups := &fakeBackupManager{restoreFn: func(ctx context.Context, key string) error {
		gotKey = key
		return nil
	}}
	th := newTestHandler(t, &fakeOrchestrator{}, backups)

	rec := th.do(http.MethodPost, "/api/backup/nightly-abc/restore", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = th.do(http.MethodPost, "/api/backup/nightly-abc/restore?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backups/nightly-abc", gotKey, "route parameter must be rebuilt into the full cloud key")
}

func TestDeleteBackup(t *testing.T) {
	backups := &fakeBackupManager{deleteFn: func(ctx context.Context, key string) error {
		if key != "backups/nightly-abc" {
			return errors.New("unexpected key")
		}
		return nil
	}}
	th := newTestHandler(t, &fakeOrchestrator{}, backups)

	rec := th.do(http.MethodDelete, "/api/backup/nightly-abc?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteBackupNotFound(t *testing.T) {
	backups := &fakeBackupManager{deleteFn: func(ctx context.Context, key string) error {
		return service.ErrBackupNotFound
	}}
	th := newTestHandler(t, &fakeOrchestrator{}, backups)

	rec := th.do(http.MethodDelete, "/api/backup/gone?confirm=true", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ── diagnostics and tombstones ──────────────────────────────────────────────

func TestDiagnostics(t *testing.T) {
	orch := &fakeOrchestrator{diagnosticsFn: func(ctx context.Context) (models.Diagnostics, error) {
		return models.Diagnostics{LocalItemCount: 12, Leader: true, State: models.SyncIdle}, nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodGet, "/api/diagnostics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var diag models.Diagnostics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diag))
	assert.Equal(t, 12, diag.LocalItemCount)
	assert.True(t, diag.Leader)
}

func TestPurgeTombstone(t *testing.T) {
	var gotID string
	orch := &fakeOrchestrator{purgeTombstoneFn: func(ctx context.Context, id string) error {
		gotID = id
		return nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodDelete, "/api/tombstone/records-1", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = th.do(http.MethodDelete, "/api/tombstone/records-1?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "records-1", gotID)
}

func TestPurgeTombstoneNotFound(t *testing.T) {
	orch := &fakeOrchestrator{purgeTombstoneFn: func(ctx context.Context, id string) error {
		return service.ErrTombstoneNotFound
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodDelete, "/api/tombstone/gone?confirm=true", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRestoreTombstones(t *testing.T) {
	var gotIDs []string
	orch := &fakeOrchestrator{restoreTombstonesFn: func(ctx context.Context, ids []string) error {
		gotIDs = ids
		return nil
	}}
	th := newTestHandler(t, orch, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/tombstone/restore", `{"ids":["a","b"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b"}, gotIDs)
}

func TestRestoreTombstonesRequiresIDs(t *testing.T) {
	th := newTestHandler(t, &fakeOrchestrator{}, &fakeBackupManager{})

	rec := th.do(http.MethodPost, "/api/tombstone/restore", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgIDsRequired)
}
