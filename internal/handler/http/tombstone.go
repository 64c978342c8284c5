// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func (h *Handler) purgeTombstone(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, app.MsgTombstoneIDRequired, http.StatusBadRequest)
		return
	}

	if err := h.orchestrator.PurgeTombstone(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.purgeTombstone").Str("id", id).Msg("error purging tombstone")
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreTombstones(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.restoreTombstones").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if len(body.IDs) == 0 {
		http.Error(w, app.MsgIDsRequired, http.StatusBadRequest)
		return
	}

	if err := h.orchestrator.RestoreTombstones(r.Context(), body.IDs); err != nil {
		log.Err(err).Str("func", "*Handler.restoreTombstones").Msg("error restoring tombstones")
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "restored", "ids": body.IDs})
}
