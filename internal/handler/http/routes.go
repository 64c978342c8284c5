package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Group(func(r chi.Router) {
		r.Post("/api/sync/now", h.syncNow)
		r.Post("/api/sync/export", h.syncExport)
		r.Post("/api/sync/import", h.syncImport)
		r.Post("/api/autosync", h.setAutoSync)

		r.Post("/api/snapshot", h.createSnapshot)
		r.Get("/api/backups", h.listBackups)
		r.Post("/api/backup/{key}/restore", h.restoreBackup)
		r.Delete("/api/backup/{key}", h.deleteBackup)

		r.Get("/api/diagnostics", h.diagnostics)
		r.Delete("/api/tombstone/{id}", h.purgeTombstone)
		r.Post("/api/tombstone/restore", h.restoreTombstones)
	})

	return router
}
