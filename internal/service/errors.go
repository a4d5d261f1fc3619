package service

import "errors"

var (
	ErrDrainInProgress    = errors.New("drain cycle already in progress")
	ErrRemoteRejected     = errors.New("sale rejected by remote")
	ErrMissingResult      = errors.New("remote returned no result for sale")
	ErrOrphanedQueueEntry = errors.New("queue entry references a missing sale")

	ErrRemoteUnreachable  = errors.New("remote is unreachable")
	ErrRemoteTimeout      = errors.New("remote call timed out")
	ErrRemoteUnauthorized = errors.New("remote refused terminal credentials")
	ErrRemoteUnavailable  = errors.New("remote is unavailable")

	ErrCatalogRefreshFailed = errors.New("catalog refresh failed")
	ErrBuildInfoNotSet      = errors.New("build version is not specified")
)

// Validation errors returned by EnqueueSale.
var (
	ErrValidationNoItems             = errors.New("sale has no items")
	ErrValidationInvalidQuantity     = errors.New("sale item quantity must be positive")
	ErrValidationNoProductID         = errors.New("sale item has no product id")
	ErrValidationNoPaymentMethod     = errors.New("sale has no payment method")
	ErrValidationNegativeTotal       = errors.New("sale total must not be negative")
	ErrValidationInvalidDiscount     = errors.New("discount percent must be within 0..100")
	ErrValidationInvalidPaymentValue = errors.New("payment amount must be positive")
)
