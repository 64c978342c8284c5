package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func (h *Handler) diagnostics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	diag, err := h.orchestrator.Diagnostics(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.diagnostics").Msg("error collecting diagnostics")
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, diag)
}
