// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
)

func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	h.runQueued(w, r, "full-sync", h.orchestrator.PerformFullSync)
}

func (h *Handler) syncExport(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}
	h.runQueued(w, r, "force-export", h.orchestrator.ForceExportToCloud)
}

func (h *Handler) syncImport(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}
	h.runQueued(w, r, "force-import", h.orchestrator.ForceImportFromCloud)
}

// runQueued submits the operation at high priority and waits for its
// outcome. A duplicate request while the same operation is pending
// coalesces onto the running one instead of starting another.
//
// The operation runs on the queue worker, outside the request's logger
// context, so it is wrapped to log completion under the request's trace
// id. When a request coalesces onto an already-pending operation, the
// first enqueuer's trace id owns that log line.
func (h *Handler) runQueued(w http.ResponseWriter, r *http.Request, id string, op func(context.Context) error) {
	log := logger.FromRequest(r)

	traced := func(ctx context.Context) error {
		start := time.Now()
		err := op(ctx)
		log.Info().
			Str("func", "*Handler.runQueued").
			Str("op", id).
			Dur("duration", time.Since(start)).
			Bool("ok", err == nil).
			Msg("queued operation finished")
		return err
	}

	result := h.ops.Add(id, traced, queue.PriorityHigh)

	select {
	case err := <-result:
		if err != nil {
			log.Err(err).Str("func", "*Handler.runQueued").Str("op", id).Msg("queued operation failed")
			http.Error(w, err.Error(), statusForError(err))
			return
		}
	case <-r.Context().Done():
		// The operation keeps running; the caller just stopped waiting.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "op": id})
}

func (h *Handler) setAutoSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.setAutoSync").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	h.cfg.Set(config.KeyAutoSync, strconv.FormatBool(body.Enabled))
	if err := h.cfg.Save(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.setAutoSync").Msg(app.MsgSavingSettings)
		http.Error(w, app.MsgSavingSettings, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}
