// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/models"
)

func (h *Handler) createSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body struct {
		Name string `json:"name"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Err(err).Str("func", "*Handler.createSnapshot").Msg(app.MsgInvalidJSON)
			http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
			return
		}
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = "snapshot"
	}
	// Slashes would nest the backup folder under an unrelated path.
	name = strings.ReplaceAll(name, "/", "-")

	var entry models.BackupEntry
	result := h.ops.Add("snapshot", func(ctx context.Context) error {
		var err error
		entry, err = h.backups.CreateSnapshot(ctx, name)
		return err
	}, queue.PriorityHigh)

	select {
	case err := <-result:
		if err != nil {
			log.Err(err).Str("func", "*Handler.createSnapshot").Msg("error creating snapshot")
			http.Error(w, err.Error(), statusForError(err))
			return
		}
	case <-r.Context().Done():
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	backups, err := h.backups.ListBackups(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBackups").Msg("error listing backups")
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	if backups == nil {
		backups = []models.BackupEntry{}
	}

	writeJSON(w, http.StatusOK, backups)
}

func (h *Handler) restoreBackup(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}
	log := logger.FromRequest(r)

	key := backupKeyFromRoute(r)
	if key == "" {
		http.Error(w, app.MsgBackupKeyRequired, http.StatusBadRequest)
		return
	}

	result := h.ops.Add("backup-restore", func(ctx context.Context) error {
		return h.backups.RestoreFromBackup(ctx, key)
	}, queue.PriorityHigh)

	select {
	case err := <-result:
		if err != nil {
			log.Err(err).Str("func", "*Handler.restoreBackup").Str("key", key).Msg("error restoring backup")
			http.Error(w, err.Error(), statusForError(err))
			return
		}
	case <-r.Context().Done():
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "restored", "key": key})
}

func (h *Handler) deleteBackup(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}
	log := logger.FromRequest(r)

	key := backupKeyFromRoute(r)
	if key == "" {
		http.Error(w, app.MsgBackupKeyRequired, http.StatusBadRequest)
		return
	}

	if err := h.backups.DeleteBackup(r.Context(), key); err != nil {
		log.Err(err).Str("func", "*Handler.deleteBackup").Str("key", key).Msg("error deleting backup")
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// backupKeyFromRoute rebuilds the full cloud key from the route parameter,
// which carries only the folder name under the backups prefix.
func backupKeyFromRoute(r *http.Request) string {
	name := chi.URLParam(r, "key")
	if name == "" {
		return ""
	}
	return service.BackupFolderPrefix + name
}
