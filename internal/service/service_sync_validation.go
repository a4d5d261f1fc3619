package service

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

// validateSale rejects records that could never be accepted by the remote
// side. Amount consistency between lines and totals is not re-checked: the
// cart computed them and the remote side recomputes them.
func validateSale(sale models.SaleRecord) error {
	if len(sale.Items) == 0 {
		return ErrValidationNoItems
	}

	for i, item := range sale.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: line %d", ErrValidationNoProductID, i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: line %d", ErrValidationInvalidQuantity, i+1)
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(maxDiscount) {
			return fmt.Errorf("%w: line %d", ErrValidationInvalidDiscount, i+1)
		}
	}

	if sale.PaymentMethod == "" {
		return ErrValidationNoPaymentMethod
	}

	if sale.Total.IsNegative() || sale.TotalWithDiscount.IsNegative() {
		return ErrValidationNegativeTotal
	}

	for _, p := range sale.Payments {
		if p.Method == "" {
			return ErrValidationNoPaymentMethod
		}
		if !p.Amount.IsPositive() {
			return ErrValidationInvalidPaymentValue
		}
	}

	return nil
}
