package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
)

// newTestStorages opens a fresh migrated in-memory database.
func newTestStorages(t *testing.T) *Storages {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), ":memory:", logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return newStorages(db, logger.Nop())
}

func testSale(id string, soldAt time.Time) models.SaleRecord {
	price := decimal.RequireFromString("150.50")
	return models.SaleRecord{
		ID:           id,
		TicketNumber: "T-" + id,
		SoldAt:       soldAt,
		Items: []models.SaleItem{{
			ProductID:       "p-1",
			Name:            "Yerba 1kg",
			Barcode:         "7790001",
			UnitPrice:       price,
			Quantity:        2,
			DiscountPercent: decimal.Zero,
			Subtotal:        price.Mul(decimal.NewFromInt(2)),
		}},
		Total:             price.Mul(decimal.NewFromInt(2)),
		TotalWithDiscount: price.Mul(decimal.NewFromInt(2)),
		PaymentMethod:     models.PaymentCash,
		Cashier:           "Ana",
	}
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}
