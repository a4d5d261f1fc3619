package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/adapter"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/internal/utils"
	"github.com/MKhiriev/go-pos-terminal/models"
)

type syncService struct {
	sales        store.SaleRepository
	queue        store.SyncQueueRepository
	transactor   store.Transactor
	catalog      CatalogService
	remote       adapter.RemoteAdapter
	connectivity Connectivity

	opts    SyncOptions
	backoff Backoff
	ids     *utils.UUIDGenerator
	metrics *metrics.Metrics

	inFlight atomic.Bool

	logger *logger.Logger
}

// NewSyncService wires the sync engine to the local storages, the catalog
// cache (for stock deduction), the remote adapter and the connectivity flag.
func NewSyncService(
	storages *store.Storages,
	catalog CatalogService,
	remote adapter.RemoteAdapter,
	connectivity Connectivity,
	m *metrics.Metrics,
	opts SyncOptions,
	logger *logger.Logger,
) SyncService {
	opts = opts.withDefaults()
	if m == nil {
		m = metrics.New()
	}

	return &syncService{
		sales:        storages.SaleRepository,
		queue:        storages.SyncQueueRepository,
		transactor:   storages.Transactor,
		catalog:      catalog,
		remote:       remote,
		connectivity: connectivity,
		opts:         opts,
		backoff:      Backoff{Min: opts.MinBackoff, Max: opts.MaxBackoff, Rand: opts.Jitter},
		ids:          utils.NewUUIDGenerator(),
		metrics:      m,
		logger:       logger,
	}
}

func (s *syncService) EnqueueSale(ctx context.Context, sale models.SaleRecord) (models.SaleRecord, error) {
	if err := validateSale(sale); err != nil {
		return models.SaleRecord{}, err
	}

	now := s.opts.Clock()
	sale.ID = strings.TrimSpace(sale.ID)
	if sale.ID == "" {
		sale.ID = s.ids.Generate()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = now
	}
	sale.Synced = false

	err := s.transactor.InTx(ctx, func(txCtx context.Context) error {
		if err := s.sales.SaveSale(txCtx, sale); err != nil {
			return err
		}
		if err := s.queue.Enqueue(txCtx, models.NewSaleQueueItem(sale.ID, now)); err != nil {
			return err
		}
		return s.catalog.DeductStock(txCtx, stockLines(sale.Items))
	})
	if err != nil {
		s.logger.WithSaleID(sale.ID).Err(err).Str("func", "syncService.EnqueueSale").Msg("sale was not recorded")
		return models.SaleRecord{}, fmt.Errorf("enqueue sale: %w", err)
	}

	s.logger.WithSaleID(sale.ID).Info().Str("total", sale.TotalWithDiscount.String()).Msg("sale recorded and queued")
	return sale, nil
}

func (s *syncService) RecentSales(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentSalesLimit
	}
	return s.sales.ListRecent(ctx, limit)
}

func (s *syncService) Drain(ctx context.Context) (models.DrainReport, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.DrainReport{}, ErrDrainInProgress
	}
	defer s.inFlight.Store(false)

	started := time.Now()
	report, outcome, err := s.drain(ctx)
	s.metrics.ObserveDrain(outcome, report, time.Since(started))

	log := s.logger.Info()
	if err != nil {
		log = s.logger.Err(err)
	}
	if !report.Skipped || err != nil {
		log.Str("func", "syncService.Drain").
			Str("outcome", outcome).
			Int("submitted", report.Submitted).
			Int("synced", report.Synced).
			Int("retrying", report.Retrying).
			Int("failed", report.Failed).
			Int("orphaned", report.Orphaned).
			Msg("drain cycle finished")
	}

	return report, err
}

func (s *syncService) drain(ctx context.Context) (models.DrainReport, string, error) {
	skipped := models.DrainReport{Skipped: true}

	if !s.connectivity.IsOnline() {
		return skipped, metrics.OutcomeSkipped, nil
	}

	items, err := s.queue.ListEligible(ctx, s.opts.Clock(), s.opts.BatchSize)
	if err != nil {
		return skipped, storeOutcome(err), fmt.Errorf("list eligible queue entries: %w", err)
	}
	if len(items) == 0 {
		return skipped, metrics.OutcomeSkipped, nil
	}

	saleIDs := make([]string, 0, len(items))
	for _, item := range items {
		saleIDs = append(saleIDs, item.Payload.SaleID)
	}

	found, err := s.sales.GetSalesByIDs(ctx, saleIDs)
	if err != nil {
		return skipped, storeOutcome(err), fmt.Errorf("resolve queued sales: %w", err)
	}

	var (
		report  models.DrainReport
		batch   = make([]models.SaleRecord, 0, len(items))
		entries = make([]models.SyncQueueItem, 0, len(items))
		orphans []int64
	)
	for _, item := range items {
		sale, ok := found[item.Payload.SaleID]
		if !ok {
			s.logger.WithQueueItem(item).Warn().
				Err(ErrOrphanedQueueEntry).
				Msg("dropping queue entry")
			orphans = append(orphans, item.ID)
			continue
		}
		batch = append(batch, sale)
		entries = append(entries, item)
	}
	report.Orphaned = len(orphans)
	report.Submitted = len(batch)

	var (
		results []models.SaleResult
		callErr error
	)
	if len(batch) > 0 {
		callCtx, cancel := context.WithTimeout(ctx, s.opts.RemoteTimeout)
		results, callErr = s.remote.CreateSalesBatch(callCtx, batch)
		cancel()
		if callErr != nil {
			callErr = mapAdapterError(callErr)
		}
	}

	now := s.opts.Clock()
	var (
		syncedSales []string
		syncedQueue []int64
		failed      []models.SyncQueueItem
	)
	for i, entry := range entries {
		var cause error
		switch {
		case callErr != nil:
			cause = callErr
		case i >= len(results):
			cause = fmt.Errorf("%w: %w", ErrRemoteRejected, ErrMissingResult)
		case !results[i].Accepted():
			cause = fmt.Errorf("%w: state %q", ErrRemoteRejected, results[i].State)
		}

		if cause == nil {
			syncedSales = append(syncedSales, entry.Payload.SaleID)
			syncedQueue = append(syncedQueue, entry.ID)
			continue
		}

		next := s.recordFailure(entry, cause, now)
		if next.Status == models.SyncStatusError {
			report.Failed++
		} else {
			report.Retrying++
		}
		s.logger.WithQueueItem(next).Warn().
			Err(cause).
			Msg("sale not synced")
		failed = append(failed, next)
	}
	report.Synced = len(syncedSales)

	// the remote side may already hold the accepted sales, so the outcome is
	// recorded even if the caller goes away
	err = s.transactor.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if err := s.queue.Delete(txCtx, orphans...); err != nil {
			return err
		}
		if err := s.sales.MarkSynced(txCtx, now, syncedSales...); err != nil {
			return err
		}
		if err := s.queue.Delete(txCtx, syncedQueue...); err != nil {
			return err
		}
		for _, item := range failed {
			if err := s.queue.UpdateAttempt(txCtx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.DrainReport{}, storeOutcome(err), fmt.Errorf("apply drain results: %w", err)
	}

	if callErr != nil {
		return report, metrics.OutcomeTransport, nil
	}
	return report, metrics.OutcomeCompleted, nil
}

// recordFailure advances an entry after a failed attempt.
func (s *syncService) recordFailure(item models.SyncQueueItem, cause error, now time.Time) models.SyncQueueItem {
	item.Tries++
	item.LastError = cause.Error()
	item.UpdatedAt = now

	next := now.Add(s.backoff.Delay(item.Tries))
	item.NextAttemptAt = &next

	if item.Tries >= s.opts.MaxTries {
		item.Status = models.SyncStatusError
	} else {
		item.Status = models.SyncStatusPending
	}
	return item
}

func storeOutcome(err error) string {
	if errors.Is(err, store.ErrStorageUnavailable) {
		return metrics.OutcomeUnavailable
	}
	return metrics.OutcomeFailed
}

// stockLines sums the sold quantity per product.
func stockLines(items []models.SaleItem) []models.StockDeduction {
	index := make(map[string]int, len(items))
	lines := make([]models.StockDeduction, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(lines)
		lines = append(lines, models.StockDeduction{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
