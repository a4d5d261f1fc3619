// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-terminal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SaleRepository persists confirmed sales. Sales are never deleted.
type SaleRepository interface {
	SaveSale(ctx context.Context, sale models.SaleRecord) error
	GetSale(ctx context.Context, id string) (models.SaleRecord, error)
	GetSalesByIDs(ctx context.Context, ids []string) (map[string]models.SaleRecord, error)
	MarkSynced(ctx context.Context, confirmedAt time.Time, ids ...string) error
	MarkUnsynced(ctx context.Context, ids ...string) error
	ListSyncedWithoutQueueEntry(ctx context.Context) ([]string, error)
	ListRecent(ctx context.Context, limit int) ([]models.SaleRecord, error)
}

// SyncQueueRepository persists outstanding remote side effects.
type SyncQueueRepository interface {
	Enqueue(ctx context.Context, items ...models.SyncQueueItem) error
	ListEligible(ctx context.Context, now time.Time, limit int) ([]models.SyncQueueItem, error)
	UpdateAttempt(ctx context.Context, item models.SyncQueueItem) error
	Delete(ctx context.Context, ids ...int64) error
	ResetErrored(ctx context.Context, now time.Time) (int, error)
	CountByStatus(ctx context.Context, status models.SyncQueueStatus) (int, error)
}

// ProductRepository persists the offline catalog.
type ProductRepository interface {
	ReplaceAll(ctx context.Context, products []models.LocalProduct) error
	BulkPut(ctx context.Context, products []models.LocalProduct) error
	Count(ctx context.Context) (int, error)
	FindByBarcode(ctx context.Context, barcode string) (models.LocalProduct, error)
	Search(ctx context.Context, text string, limit int) ([]models.LocalProduct, error)
	DeductStock(ctx context.Context, lines []models.StockDeduction) error
}

// Transactor runs a function inside one local transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator decides how a driver error should be treated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
