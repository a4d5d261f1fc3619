package service

import (
	"context"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
)

type statusService struct {
	queue   store.SyncQueueRepository
	metrics *metrics.Metrics

	logger *logger.Logger
}

func NewStatusService(storages *store.Storages, m *metrics.Metrics, logger *logger.Logger) StatusService {
	if m == nil {
		m = metrics.New()
	}
	return &statusService{queue: storages.SyncQueueRepository, metrics: m, logger: logger}
}

// GetSyncStats counts pending and error entries and publishes them as gauges.
func (s *statusService) GetSyncStats(ctx context.Context) (models.SyncStats, error) {
	pending, err := s.queue.CountByStatus(ctx, models.SyncStatusPending)
	if err != nil {
		return models.SyncStats{}, err
	}

	errored, err := s.queue.CountByStatus(ctx, models.SyncStatusError)
	if err != nil {
		return models.SyncStats{}, err
	}

	stats := models.SyncStats{Pending: pending, Error: errored}
	s.metrics.ObserveStats(stats)

	return stats, nil
}
