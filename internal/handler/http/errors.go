package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

// statusForError maps service-level sentinel errors onto HTTP statuses.
// Anything unrecognized is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoProviderSelected):
		return http.StatusPreconditionFailed
	case errors.Is(err, service.ErrTombstoneNotFound),
		errors.Is(err, service.ErrBackupNotFound):
		return http.StatusNotFound
	case errors.Is(err, queue.ErrQueueClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	_, _ = utils.WriteJSON(w, body, status)
}

// requireConfirm guards destructive operations. The caller must pass
// confirm=true explicitly; anything else gets a 428 and false.
func requireConfirm(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	http.Error(w, app.MsgConfirmRequired, http.StatusPreconditionRequired)
	return false
}
