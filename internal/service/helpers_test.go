package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeClock — управляемые часы для детерминированных тестов backoff.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// switchConnectivity — флаг online без зондирования.
type switchConnectivity struct {
	online atomic.Bool
}

func (s *switchConnectivity) IsOnline() bool { return s.online.Load() }

// fakeRemote записывает каждый батч и отвечает через respond.
type fakeRemote struct {
	mu      sync.Mutex
	batches [][]models.SaleRecord
	respond func(batch []models.SaleRecord) ([]models.SaleResult, error)

	pages   []models.CatalogPage
	pageErr error
	pingErr error
}

func (f *fakeRemote) CreateSalesBatch(ctx context.Context, sales []models.SaleRecord) ([]models.SaleResult, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]models.SaleRecord(nil), sales...))
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return acceptAll(sales)
	}
	return respond(sales)
}

func (f *fakeRemote) FetchCatalogPage(_ context.Context, req models.CatalogPageRequest) (models.CatalogPage, error) {
	if f.pageErr != nil {
		return models.CatalogPage{}, f.pageErr
	}
	if req.Page < 1 || req.Page > len(f.pages) {
		return models.CatalogPage{Page: req.Page, TotalPages: len(f.pages)}, nil
	}
	return f.pages[req.Page-1], nil
}

func (f *fakeRemote) Ping(context.Context) error { return f.pingErr }

func (f *fakeRemote) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func (f *fakeRemote) batch(i int) []models.SaleRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches[i]
}

func acceptAll(sales []models.SaleRecord) ([]models.SaleResult, error) {
	results := make([]models.SaleResult, len(sales))
	for i := range sales {
		results[i] = models.SaleResult{ID: "srv-" + sales[i].ID, State: models.RemoteStateCompletedEn}
	}
	return results, nil
}

type testEngine struct {
	svc          *syncService
	storages     *store.Storages
	remote       *fakeRemote
	clock        *fakeClock
	connectivity *switchConnectivity
	catalog      CatalogService
}

// newTestEngine собирает sync engine поверх настоящей SQLite в памяти.
func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), ":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	remote := &fakeRemote{}
	clock := newFakeClock()
	conn := &switchConnectivity{}
	catalog := NewCatalogService(storages, remote, logger.Nop())

	svc := NewSyncService(storages, catalog, remote, conn, metrics.New(), SyncOptions{
		Clock:  clock.Now,
		Jitter: func() float64 { return 0.5 },
	}, logger.Nop()).(*syncService)

	return &testEngine{svc: svc, storages: storages, remote: remote, clock: clock, connectivity: conn, catalog: catalog}
}

func (e *testEngine) queueItems(t *testing.T) []models.SyncQueueItem {
	t.Helper()
	// далёкое будущее — видим все pending строки независимо от backoff
	items, err := e.storages.SyncQueueRepository.ListEligible(context.Background(), e.clock.Now().Add(24*time.Hour), 1000)
	require.NoError(t, err)
	return items
}

func newSale(id string) models.SaleRecord {
	price := decimal.RequireFromString("1000")
	return models.SaleRecord{
		ID:           id,
		TicketNumber: "T-" + id,
		Items: []models.SaleItem{{
			ProductID: "p-1",
			Name:      "Yerba Mate 1kg",
			UnitPrice: price,
			Quantity:  1,
			Subtotal:  price,
		}},
		Total:             price,
		TotalWithDiscount: price,
		PaymentMethod:     models.PaymentCash,
		Cashier:           "ana",
	}
}

type queueRow struct {
	status        string
	tries         int
	nextAttemptAt int64
	lastError     string
}

// queueRowFor читает строку очереди напрямую, включая строки в статусе error.
func (e *testEngine) queueRowFor(t *testing.T, saleID string) (queueRow, bool) {
	t.Helper()
	rows, err := e.storages.DB.QueryContext(context.Background(),
		`SELECT status, tries, COALESCE(next_attempt_at, 0), COALESCE(last_error, '') FROM sync_queue WHERE sale_id = ?`, saleID)
	require.NoError(t, err)
	defer rows.Close()

	var (
		row   queueRow
		found bool
	)
	for rows.Next() {
		require.False(t, found, "more than one queue row for sale %s", saleID)
		require.NoError(t, rows.Scan(&row.status, &row.tries, &row.nextAttemptAt, &row.lastError))
		found = true
	}
	require.NoError(t, rows.Err())
	return row, found
}

func (e *testEngine) saleSynced(t *testing.T, saleID string) bool {
	t.Helper()
	sale, err := e.storages.SaleRepository.GetSale(context.Background(), saleID)
	require.NoError(t, err)
	return sale.Synced
}
