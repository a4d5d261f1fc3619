package service

import (
	"github.com/MKhiriev/go-pos-terminal/internal/adapter"
	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
)

type Services struct {
	AppInfoService  AppInfoService
	CatalogService  CatalogService
	SyncService     SyncService
	RecoveryService RecoveryService
	StatusService   StatusService
	Connectivity    ConnectivityMonitor
	SyncJob         SyncJob
}

// NewServices wires the terminal core. An offline to online transition
// triggers a drain.
func NewServices(
	storages *store.Storages,
	remote adapter.RemoteAdapter,
	cfg config.TerminalConfig,
	buildInfo models.AppBuildInfo,
	m *metrics.Metrics,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	connectivity := NewConnectivityMonitor(remote, m, logger)
	catalog := NewCatalogService(storages, remote, logger)
	syncSvc := NewSyncService(storages, catalog, remote, connectivity, m, SyncOptions{
		RemoteTimeout: cfg.Adapter.RequestTimeout,
	}, logger)
	job := NewSyncJob(syncSvc, connectivity, logger)

	connectivity.OnOnline(job.TriggerDrainIfOnline)

	return &Services{
		AppInfoService:  appInfo,
		CatalogService:  catalog,
		SyncService:     syncSvc,
		RecoveryService: NewRecoveryService(storages, nil, logger),
		StatusService:   NewStatusService(storages, m, logger),
		Connectivity:    connectivity,
		SyncJob:         job,
	}, nil
}
