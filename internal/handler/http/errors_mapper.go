package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pos-terminal/internal/prefs"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidationNoItems:             http.StatusBadRequest,
	service.ErrValidationInvalidQuantity:     http.StatusBadRequest,
	service.ErrValidationNoProductID:         http.StatusBadRequest,
	service.ErrValidationNoPaymentMethod:     http.StatusBadRequest,
	service.ErrValidationNegativeTotal:       http.StatusBadRequest,
	service.ErrValidationInvalidDiscount:     http.StatusBadRequest,
	service.ErrValidationInvalidPaymentValue: http.StatusBadRequest,
	service.ErrDrainInProgress:               http.StatusConflict,
	service.ErrCatalogRefreshFailed:          http.StatusBadGateway,

	prefs.ErrInvalidPreferences: http.StatusBadRequest,
	prefs.ErrEmptyKey:           http.StatusBadRequest,

	ErrInvalidLimit:        http.StatusBadRequest,
	ErrMissingOnlineFlag:   http.StatusBadRequest,
	ErrPreferencesDisabled: http.StatusNotFound,

	store.ErrSaleAlreadyExists: http.StatusConflict,
	store.ErrSaleNotFound:      http.StatusNotFound,
	store.ErrProductNotFound:   http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrEncodingColumn:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	// checked first: it is always wrapped together with a query-level sentinel
	if errors.Is(err, store.ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
