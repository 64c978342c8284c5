package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func newMockSettingsRepo(t *testing.T) (SettingsRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	repo := NewSettingsRepository(&DB{DB: conn, logger: logger.Nop()}, logger.Nop())
	return repo, mock
}

func TestGetSetting(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getSetting)).
		WithArgs("editor.font").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("monospace"))

	value, err := repo.GetSetting(context.Background(), "editor.font")
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if value != "monospace" {
		t.Fatalf("got %q, want monospace", value)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getSetting)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.GetSetting(context.Background(), "missing")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestSetSettingsCommitsTransaction(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertSetting)).
		WithArgs("editor.font", "monospace").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetSettings(context.Background(), map[string]string{"editor.font": "monospace"})
	if err != nil {
		t.Fatalf("set settings: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetSettingsRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertSetting)).
		WithArgs("editor.font", "monospace").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.SetSettings(context.Background(), map[string]string{"editor.font": "monospace"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListSettings(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(listSettingsByPrefix)).
		WithArgs("vaultsync.").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("vaultsync.provider.name", "s3").
			AddRow("vaultsync.sync.auto", "true"))

	out, err := repo.ListSettings(context.Background(), "vaultsync.")
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(out) != 2 || out["vaultsync.provider.name"] != "s3" {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestStatSettings(t *testing.T) {
	repo, mock := newMockSettingsRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(statSettings)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "LENGTH(value)"}).
			AddRow("a", int64(10)).
			AddRow("b", int64(250)))

	stats, err := repo.StatSettings(context.Background())
	if err != nil {
		t.Fatalf("stat settings: %v", err)
	}
	if len(stats) != 2 || stats[1].Bytes != 250 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
