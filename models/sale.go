package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the tender type the customer used for a sale.
type PaymentMethod string

const (
	// PaymentCash is a cash payment; CashTendered and Change are meaningful only for it.
	PaymentCash PaymentMethod = "efectivo"

	// PaymentDebit is a debit card payment.
	PaymentDebit PaymentMethod = "debito"

	// PaymentCredit is a credit card payment.
	PaymentCredit PaymentMethod = "credito"

	// PaymentQR is a wallet/QR payment.
	PaymentQR PaymentMethod = "qr"

	// PaymentTransfer is a bank transfer.
	PaymentTransfer PaymentMethod = "transferencia"

	// PaymentMixed is a split payment; the breakdown lives in SaleRecord.Payments.
	PaymentMixed PaymentMethod = "mixto"
)

// SaleItem is one line of a confirmed sale.
type SaleItem struct {
	// ProductID references LocalProduct.ID / the remote product id.
	ProductID string `json:"product_id"`

	// Name is the product name at the moment of sale.
	Name string `json:"name"`

	// Barcode is the scanned code, kept for reprints.
	Barcode string `json:"barcode,omitempty"`

	// UnitPrice is the sale price per unit.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Quantity is the number of units sold.
	Quantity int `json:"quantity"`

	// DiscountPercent is the per-line discount in the 0..100 range.
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	// Subtotal is the computed line total after the line discount.
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PaymentDetail is one leg of a split payment.
type PaymentDetail struct {
	Method PaymentMethod   `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleRecord is one completed transaction, regardless of its sync state.
// Rows are never deleted locally; they are kept for reprint and audit.
type SaleRecord struct {
	// ID is the client-generated identifier. It is the idempotency key the
	// remote side deduplicates on and must never change across retries.
	ID string `json:"id"`

	// TicketNumber is the locally assigned ticket number.
	TicketNumber string `json:"ticket_number"`

	// SoldAt is the moment the sale was confirmed at the terminal.
	SoldAt time.Time `json:"sold_at"`

	// Items are the sale lines.
	Items []SaleItem `json:"items"`

	// Total is the sum of line subtotals before the global discount.
	Total decimal.Decimal `json:"total"`

	// TotalWithDiscount is the amount actually charged.
	TotalWithDiscount decimal.Decimal `json:"total_with_discount"`

	// PaymentMethod is the tender type.
	PaymentMethod PaymentMethod `json:"payment_method"`

	// Payments is the optional breakdown for split payments.
	Payments []PaymentDetail `json:"payments,omitempty"`

	// CashTendered is how much cash the customer handed over.
	CashTendered *decimal.Decimal `json:"cash_tendered,omitempty"`

	// Change is the cash returned to the customer.
	Change *decimal.Decimal `json:"change,omitempty"`

	// Cashier is the name of the cashier who confirmed the sale.
	Cashier string `json:"cashier"`

	// CashSessionID is the cash-register session that owned the sale, if any.
	CashSessionID *string `json:"cash_session_id,omitempty"`

	// Synced is false until the remote side confirms acceptance.
	Synced bool `json:"synced"`
}
