package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pos-terminal/internal/adapter"
	"github.com/MKhiriev/go-pos-terminal/internal/config"
	myHTTP "github.com/MKhiriev/go-pos-terminal/internal/handler/http"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/prefs"
	"github.com/MKhiriev/go-pos-terminal/internal/server"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/internal/workers"
	"github.com/MKhiriev/go-pos-terminal/models"
)

type App struct {
	cfg *config.TerminalConfig

	storages *store.Storages
	prefs    *prefs.Store
	metrics  *metrics.Metrics
	services *service.Services
	workers  *workers.Workers
	server   server.Server

	logger *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.TerminalConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	remote, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	preferences, err := prefs.Open(cfg.Storage.PreferencesPath)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	m := metrics.New()
	services, err := service.NewServices(storages, remote, *cfg, buildInfo, m, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	handler := myHTTP.NewHandler(services, preferences, m, logger)
	srv, err := server.NewServer(handler.Init(), cfg.Server, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		prefs:    preferences,
		metrics:  m,
		services: services,
		workers:  workers.NewTerminalWorkers(services, cfg.Workers, logger),
		server:   srv,
		logger:   logger,
	}, nil
}

func (a *App) Services() *service.Services {
	return a.services
}

// Addr is the bound address of the local API once Run has started it.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Run prepares the catalog, starts the background workers and serves the
// local API until ctx is cancelled. A catalog that cannot be prepared is
// logged and does not stop the terminal from selling.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.CatalogService.SeedIfEmpty(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("catalog is not available offline")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if err := a.server.RunServer(ctx); err != nil {
		return fmt.Errorf("local API: %w", err)
	}
	return nil
}

// DrainOnce probes the remote side and runs a single drain cycle.
func (a *App) DrainOnce(ctx context.Context) (models.DrainReport, error) {
	if !a.services.Connectivity.Probe(ctx) {
		a.logger.Warn().Str("remote", a.cfg.Adapter.HTTPAddress).Msg("remote is unreachable, nothing drained")
	}
	return a.services.SyncService.Drain(ctx)
}

func (a *App) Close() error {
	var err error
	if a.storages != nil {
		err = errors.Join(err, a.storages.Close())
	}
	return err
}
