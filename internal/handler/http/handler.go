// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the agent's local control surface: a small JSON API on a
// loopback listener through which a frontend or CLI triggers syncs,
// backups, and tombstone maintenance, and reads diagnostics.
package http

import (
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/service"
)

type Handler struct {
	orchestrator service.Orchestrator
	backups      service.BackupManager
	ops          *queue.Queue
	cfg          *config.Manager

	logger *logger.Logger
}

func NewHandler(orchestrator service.Orchestrator, backups service.BackupManager, ops *queue.Queue, cfg *config.Manager, logger *logger.Logger) *Handler {
	logger.Info().Msg("control handler created")
	return &Handler{
		orchestrator: orchestrator,
		backups:      backups,
		ops:          ops,
		cfg:          cfg,
		logger:       logger,
	}
}
