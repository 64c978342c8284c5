// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

type controlServer struct {
	server *http.Server
	logger *logger.Logger
}

// New wraps handler in the configured request timeout and binds it to the
// control listen address. The listener is expected to be loopback-only;
// the control API carries no authentication of its own.
func New(handler http.Handler, cfg config.Control, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, ErrNoListenAddress
	}
	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, app.MsgRequestTimedOut)
	}

	return &controlServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}, nil
}

func (s *controlServer) RunServer() error {
	s.logger.Info().
		Str("func", "*controlServer.RunServer").
		Str("address", s.server.Addr).
		Msg("control API listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *controlServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
