// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/election"
	handlerhttp "github.com/MKhiriev/go-vault-sync/internal/handler/http"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/provider"
	"github.com/MKhiriev/go-vault-sync/internal/queue"
	"github.com/MKhiriev/go-vault-sync/internal/server"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/internal/validators"
	"github.com/MKhiriev/go-vault-sync/internal/workers"
)

const shutdownTimeout = 5 * time.Second

// App owns every long-lived component of the sync agent and their
// start/stop ordering.
type App struct {
	cfg      *config.StructuredConfig
	db       *store.DB
	settings *config.Manager
	crypto   crypto.Service
	registry *provider.Registry
	ops      *queue.Queue
	elector  *election.Elector
	workers  *workers.Workers
	server   server.Server

	logger *logger.Logger
}

// NewApp builds the full dependency graph from the launch configuration.
// Nothing is started here; Run owns the lifecycle.
func NewApp(cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect local database: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate local database: %w", err)
	}

	settingsRepo := store.NewSettingsRepository(db, log)
	recordsRepo := store.NewRecordsRepository(db, log)
	metadataRepo := store.NewMetadataRepository(settingsRepo, log)

	settings := config.NewManager(settingsRepo, crypto.NewObfuscator(), log)
	settings.SetPassphrase(cfg.App.Passphrase)
	if err = settings.Load(ctx); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err = settings.ApplyBootstrap(ctx, cfg); err != nil {
		return nil, fmt.Errorf("persist launch settings: %w", err)
	}

	cryptoService := crypto.NewService(log)
	if cfg.App.Passphrase != "" {
		cryptoService.SetPassphrase(cfg.App.Passphrase)
	}

	localStore := store.NewLocalStore(settingsRepo, recordsRepo, settings, validators.NewItemValidator(), log)

	registry := provider.NewRegistry()
	registry.Register(provider.NewS3Provider(s3ConfigFromSettings(settings), log))
	registry.Register(provider.NewDriveProvider(driveConfigFromSettings(settings), log, func(providerName string) {
		log.Warn().
			Str("func", "client.App").
			Str("provider", providerName).
			Msg("access token rejected, re-authentication required")
	}))

	ops := queue.New(log)

	claimPath := filepath.Join(cfg.App.DataDir, "leader.claim")
	elector := election.NewElector(
		election.NewFileLeaseStore(claimPath, log),
		utils.NewUUIDGenerator().Generate(),
		clockwork.NewRealClock(),
		log,
	)

	orchestrator := service.NewOrchestrator(
		localStore, metadataRepo, settingsRepo, settings,
		cryptoService, registry, elector.IsLeader, log,
	)
	backups := service.NewBackupManager(
		localStore, settingsRepo, settings,
		cryptoService, registry, clockwork.NewRealClock(), log,
	)

	jobs := workers.NewWorkers(
		workers.NewSyncWorker(orchestrator, settings, ops, elector.IsLeader, log),
		workers.NewBackupWorker(backups, ops, elector.IsLeader, log),
	)

	handler := handlerhttp.NewHandler(orchestrator, backups, ops, settings, log)
	controlServer, err := server.New(handler.Init(), cfg.Control, log)
	if err != nil {
		return nil, fmt.Errorf("create control server: %w", err)
	}

	return &App{
		cfg:      cfg,
		db:       db,
		settings: settings,
		crypto:   cryptoService,
		registry: registry,
		ops:      ops,
		elector:  elector,
		workers:  jobs,
		server:   controlServer,
		logger:   log,
	}, nil
}

// Run starts the agent and blocks until SIGINT/SIGTERM or a control
// server failure, then tears everything down in reverse start order.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.initializeActiveProvider(ctx)

	a.elector.OnBecameLeader(func() {
		a.logger.Info().Str("func", "*App.Run").Msg("this session is now the sync leader")
	})
	a.elector.OnBecameFollower(func() {
		a.logger.Info().Str("func", "*App.Run").Msg("this session is now a follower")
	})

	a.ops.Start(ctx)
	a.elector.Elect(ctx)
	a.workers.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.RunServer(); err != nil {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info().Str("func", "*App.Run").Msg("shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("control server: %w", err)
		a.logger.Err(runErr).Str("func", "*App.Run").Msg("control server failed")
	}

	a.shutdown()
	return runErr
}

// initializeActiveProvider prepares the selected backend. A missing or
// incomplete configuration is not fatal: the agent still serves the
// control API so the user can finish provisioning.
func (a *App) initializeActiveProvider(ctx context.Context) {
	name := a.settings.Get(config.KeyProviderName)
	if name == "" {
		a.logger.Warn().
			Str("func", "*App.initializeActiveProvider").
			Msg("no storage provider selected, sync disabled until configured")
		return
	}

	prov, err := a.registry.Get(name)
	if err == nil {
		err = prov.Initialize(ctx)
	}
	if err != nil {
		a.logger.Warn().
			Str("func", "*App.initializeActiveProvider").
			Str("provider", name).
			Err(err).
			Msg("storage provider not ready")
	}
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Warn().Str("func", "*App.shutdown").Err(err).Msg("control server shutdown")
	}

	a.workers.Stop()
	a.elector.Resign(ctx)
	a.ops.Stop()
	a.crypto.Close()

	if err := a.db.Close(); err != nil {
		a.logger.Warn().Str("func", "*App.shutdown").Err(err).Msg("closing local database")
	}

	a.logger.Info().Str("func", "*App.shutdown").Msg("agent stopped")
}

func s3ConfigFromSettings(settings *config.Manager) provider.S3Config {
	usePathStyle, _ := strconv.ParseBool(settings.Get(config.KeyS3UsePathStyle))
	return provider.S3Config{
		Bucket:          settings.Get(config.KeyS3Bucket),
		Region:          settings.Get(config.KeyS3Region),
		Endpoint:        settings.Get(config.KeyS3Endpoint),
		AccessKeyID:     settings.Get(config.KeyS3AccessKeyID),
		SecretAccessKey: settings.Get(config.KeyS3SecretAccessKey),
		Prefix:          settings.Get(config.KeyS3Prefix),
		UsePathStyle:    usePathStyle,
	}
}

func driveConfigFromSettings(settings *config.Manager) provider.DriveConfig {
	return provider.DriveConfig{
		BaseURL:     settings.Get(config.KeyDriveBaseURL),
		ClientID:    settings.Get(config.KeyDriveClientID),
		AccessToken: settings.Get(config.KeyDriveAccessToken),
		RootFolder:  settings.Get(config.KeyDriveRootFolder),
	}
}
