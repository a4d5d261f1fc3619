package adapter

import (
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// toSyncBatchRequest converts local sale records into the remote wire format,
// keeping their order.
func toSyncBatchRequest(sales []models.SaleRecord) models.SyncBatchRequest {
	req := models.SyncBatchRequest{Sales: make([]models.SyncSaleRequest, 0, len(sales))}
	for _, sale := range sales {
		req.Sales = append(req.Sales, toSyncSaleRequest(sale))
	}
	return req
}

func toSyncSaleRequest(sale models.SaleRecord) models.SyncSaleRequest {
	out := models.SyncSaleRequest{
		OfflineID: sale.ID,
		Items:     make([]models.SyncSaleItemRequest, 0, len(sale.Items)),
	}
	if sale.CashSessionID != nil {
		out.CashSessionID = *sale.CashSessionID
	}

	for _, item := range sale.Items {
		out.Items = append(out.Items, models.SyncSaleItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  lineDiscount(item),
		})
	}

	if len(sale.Payments) > 0 {
		out.Payments = make([]models.SyncPaymentRequest, 0, len(sale.Payments))
		for _, p := range sale.Payments {
			out.Payments = append(out.Payments, models.SyncPaymentRequest{Method: string(p.Method), Amount: p.Amount})
		}
		return out
	}

	method := sale.PaymentMethod
	if method == models.PaymentMixed || method == "" {
		method = models.PaymentCash
	}
	out.Payments = []models.SyncPaymentRequest{{Method: string(method), Amount: sale.TotalWithDiscount}}

	return out
}

// lineDiscount is the discount amount of a line: qty * price * pct / 100.
func lineDiscount(item models.SaleItem) decimal.Decimal {
	if item.DiscountPercent.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(item.Quantity)).
		Mul(item.UnitPrice).
		Mul(item.DiscountPercent).
		Div(hundred).
		Round(2)
}
