package models

import "github.com/shopspring/decimal"

// LocalProduct is the offline projection of a remote catalog entry.
// The whole table is overwritten on every successful catalog refresh.
type LocalProduct struct {
	ID      string          `json:"id"`
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
}

// StockDeduction is the quantity of one product that left the shelf.
type StockDeduction struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
