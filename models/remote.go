package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Remote sale states as reported by the sync-batch endpoint.
const (
	RemoteStateCompleted   = "completada"
	RemoteStateCompletedEn = "completed"
	RemoteStateAccepted    = "accepted"
	RemoteStateAcceptedEs  = "aceptada"
	RemoteStateError       = "error"
	RemoteStateRejected    = "rechazada"
	RemoteStateRejectedEn  = "rejected"
)

// SaleResult is the remote verdict for one submitted sale. Results come back
// in the same order the sales were submitted.
type SaleResult struct {
	// ID is the server-assigned sale id, empty when the server did not store it.
	ID string `json:"id,omitempty"`

	// TicketNumber is the server-side ticket number.
	TicketNumber int `json:"numero_ticket,omitempty"`

	// State is the server-side sale state.
	State string `json:"estado"`

	// StockConflict is set when the server had to compensate stock.
	StockConflict bool `json:"conflicto_stock,omitempty"`
}

// Accepted reports whether the remote side took ownership of the sale.
//
// Unknown states are rejections: a state the terminal does not recognise is
// retried and eventually parked, never silently marked as synced. An empty
// state is accepted only when the server assigned an id.
func (r SaleResult) Accepted() bool {
	switch strings.ToLower(strings.TrimSpace(r.State)) {
	case RemoteStateCompleted, RemoteStateCompletedEn, RemoteStateAccepted, RemoteStateAcceptedEs:
		return true
	case "":
		return strings.TrimSpace(r.ID) != ""
	default:
		return false
	}
}

// SyncSaleItemRequest is one sale line in the remote wire format.
type SyncSaleItemRequest struct {
	ProductID string          `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	Discount  decimal.Decimal `json:"descuento"`
}

// SyncPaymentRequest is one payment leg in the remote wire format.
type SyncPaymentRequest struct {
	Method string          `json:"metodo"`
	Amount decimal.Decimal `json:"monto"`
}

// SyncSaleRequest is one sale in the remote wire format. OfflineID carries
// the idempotency key.
type SyncSaleRequest struct {
	CashSessionID string                `json:"sesion_caja_id"`
	Items         []SyncSaleItemRequest `json:"items"`
	Payments      []SyncPaymentRequest  `json:"pagos"`
	OfflineID     string                `json:"offline_id"`
}

// SyncBatchRequest is the body of the remote sync-batch call.
type SyncBatchRequest struct {
	Sales []SyncSaleRequest `json:"ventas"`
}

// CatalogPageRequest selects one page of the remote catalog.
type CatalogPageRequest struct {
	Page  int
	Limit int
}

// ProductDTO is a remote catalog entry.
type ProductDTO struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"codigo_barras"`
	Name      string          `json:"nombre"`
	SalePrice decimal.Decimal `json:"precio_venta"`
	Stock     int             `json:"stock_actual"`
	Active    bool            `json:"activo"`
}

// CatalogPage is one page of the remote catalog.
type CatalogPage struct {
	Data       []ProductDTO `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}
