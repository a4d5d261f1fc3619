package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
)

type recoveryService struct {
	sales      store.SaleRepository
	queue      store.SyncQueueRepository
	transactor store.Transactor
	clock      func() time.Time

	logger *logger.Logger
}

func NewRecoveryService(storages *store.Storages, clock func() time.Time, logger *logger.Logger) RecoveryService {
	if clock == nil {
		clock = time.Now
	}
	return &recoveryService{
		sales:      storages.SaleRepository,
		queue:      storages.SyncQueueRepository,
		transactor: storages.Transactor,
		clock:      clock,
		logger:     logger,
	}
}

// ForceRecovery runs two passes, each in its own transaction:
//  1. every error entry goes back to pending with tries = 0 and an immediate
//     next attempt;
//  2. every sale flagged as synced that has neither a remote confirmation nor
//     a queue entry is flipped back to unsynced and gets a fresh pending entry.
//
// Sales confirmed by a drain keep their confirmation time, so the second pass
// never resubmits the normal sales history.
func (s *recoveryService) ForceRecovery(ctx context.Context) (models.RecoveryReport, error) {
	var report models.RecoveryReport
	now := s.clock()

	err := s.transactor.InTx(ctx, func(txCtx context.Context) error {
		n, err := s.queue.ResetErrored(txCtx, now)
		report.Reset = n
		return err
	})
	if err != nil {
		return models.RecoveryReport{}, fmt.Errorf("reset errored queue entries: %w", err)
	}

	err = s.transactor.InTx(ctx, func(txCtx context.Context) error {
		ids, err := s.sales.ListSyncedWithoutQueueEntry(txCtx)
		if err != nil || len(ids) == 0 {
			return err
		}

		if err = s.sales.MarkUnsynced(txCtx, ids...); err != nil {
			return err
		}

		items := make([]models.SyncQueueItem, 0, len(ids))
		for _, id := range ids {
			items = append(items, models.NewSaleQueueItem(id, now))
		}
		if err = s.queue.Enqueue(txCtx, items...); err != nil {
			return err
		}

		report.Requeued = len(ids)
		s.logger.Warn().
			Str("func", "recoveryService.ForceRecovery").
			Int("count", len(ids)).
			Msg("sales flagged as synced without remote confirmation were requeued")
		return nil
	})
	if err != nil {
		report.Recovered = report.Reset
		return report, fmt.Errorf("re-enqueue synced sales: %w", err)
	}

	report.Recovered = report.Reset + report.Requeued

	s.logger.Info().
		Str("func", "recoveryService.ForceRecovery").
		Int("reset", report.Reset).
		Int("requeued", report.Requeued).
		Msg("recovery finished")

	return report, nil
}
