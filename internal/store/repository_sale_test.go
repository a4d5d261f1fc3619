package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
)

func TestSaleRepository_SaveAndGet_RoundTrip(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	soldAt := time.Date(2026, 3, 1, 10, 30, 15, 123000000, time.UTC)

	sale := testSale("s-1", soldAt)
	sale.PaymentMethod = models.PaymentMixed
	sale.Payments = []models.PaymentDetail{
		{Method: models.PaymentCash, Amount: decimal.RequireFromString("100")},
		{Method: models.PaymentDebit, Amount: decimal.RequireFromString("201")},
	}
	tendered := decimal.RequireFromString("100")
	change := decimal.Zero
	session := "cs-9"
	sale.CashTendered = &tendered
	sale.Change = &change
	sale.CashSessionID = &session

	require.NoError(t, s.SaleRepository.SaveSale(ctx, sale))

	got, err := s.SaleRepository.GetSale(ctx, "s-1")
	require.NoError(t, err)

	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, sale.TicketNumber, got.TicketNumber)
	assert.True(t, soldAt.Equal(got.SoldAt))
	assert.Equal(t, models.PaymentMixed, got.PaymentMethod)
	assert.True(t, sale.Total.Equal(got.Total))
	assert.True(t, sale.TotalWithDiscount.Equal(got.TotalWithDiscount))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p-1", got.Items[0].ProductID)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("150.50")))
	require.Len(t, got.Payments, 2)
	assert.Equal(t, models.PaymentDebit, got.Payments[1].Method)
	require.NotNil(t, got.CashTendered)
	assert.True(t, got.CashTendered.Equal(tendered))
	require.NotNil(t, got.CashSessionID)
	assert.Equal(t, "cs-9", *got.CashSessionID)
	assert.False(t, got.Synced)
}

func TestSaleRepository_SaveSale_OptionalFieldsStayNil(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-1", time.Now())))

	got, err := s.SaleRepository.GetSale(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, got.Payments)
	assert.Nil(t, got.CashTendered)
	assert.Nil(t, got.Change)
	assert.Nil(t, got.CashSessionID)
}

func TestSaleRepository_SaveSale_Duplicate(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-1", time.Now())))
	err := s.SaleRepository.SaveSale(ctx, testSale("s-1", time.Now()))
	assert.ErrorIs(t, err, ErrSaleAlreadyExists)
}

func TestSaleRepository_GetSale_NotFound(t *testing.T) {
	s := newTestStorages(t)

	_, err := s.SaleRepository.GetSale(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestSaleRepository_GetSalesByIDs(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-1", now)))
	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-2", now)))

	got, err := s.SaleRepository.GetSalesByIDs(ctx, []string{"s-1", "missing", "s-2"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "s-1")
	assert.Contains(t, got, "s-2")
	assert.NotContains(t, got, "missing")

	empty, err := s.SaleRepository.GetSalesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaleRepository_MarkSyncedAndUnsynced(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-1", now)))
	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-2", now)))

	require.NoError(t, s.SaleRepository.MarkSynced(ctx, now, "s-1", "s-2"))
	got, err := s.SaleRepository.GetSale(ctx, "s-2")
	require.NoError(t, err)
	assert.True(t, got.Synced)

	require.NoError(t, s.SaleRepository.MarkUnsynced(ctx, "s-2"))
	got, err = s.SaleRepository.GetSale(ctx, "s-2")
	require.NoError(t, err)
	assert.False(t, got.Synced)

	// no ids is a no-op
	require.NoError(t, s.SaleRepository.MarkSynced(ctx, now))
}

func TestSaleRepository_ListSyncedWithoutQueueEntry(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// synced flag without confirmation or queue row: inconsistent
	inconsistent := testSale("s-1", now)
	inconsistent.Synced = true
	require.NoError(t, s.SaleRepository.SaveSale(ctx, inconsistent))

	// synced with a queue row
	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-2", now)))
	require.NoError(t, s.SaleRepository.MarkSynced(ctx, now, "s-2"))
	require.NoError(t, s.SyncQueueRepository.Enqueue(ctx, models.NewSaleQueueItem("s-2", now)))

	// not synced
	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-3", now)))

	// confirmed by the remote side, queue row already deleted
	require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale("s-4", now)))
	require.NoError(t, s.SaleRepository.MarkSynced(ctx, now, "s-4"))

	ids, err := s.SaleRepository.ListSyncedWithoutQueueEntry(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, ids)

	// unsynced and synced again without confirmation becomes inconsistent
	require.NoError(t, s.SaleRepository.MarkUnsynced(ctx, "s-4"))
	_, err = s.DB.ExecContext(ctx, "UPDATE sales SET synced = 1 WHERE id = 's-4'")
	require.NoError(t, err)

	ids, err = s.SaleRepository.ListSyncedWithoutQueueEntry(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-4"}, ids)
}

func TestSaleRepository_ListRecent(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"s-1", "s-2", "s-3"} {
		require.NoError(t, s.SaleRepository.SaveSale(ctx, testSale(id, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := s.SaleRepository.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s-3", got[0].ID)
	assert.Equal(t, "s-2", got[1].ID)
}

func TestSaleRepository_SaveSale_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("INSERT INTO sales").WillReturnError(errors.New("disk on fire"))

	repo := NewSaleRepository(&DB{DB: sqlDB, logger: logger.Nop()}, logger.Nop())
	err = repo.SaveSale(context.Background(), testSale("s-1", time.Now()))

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepository_GetSalesByIDs_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT (.+) FROM sales WHERE id IN").
		WithArgs("s-1", "s-2").
		WillReturnError(errors.New("network fs gone"))

	repo := NewSaleRepository(&DB{DB: sqlDB, logger: logger.Nop()}, logger.Nop())
	_, err = repo.GetSalesByIDs(context.Background(), []string{"s-1", "s-2"})

	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}
