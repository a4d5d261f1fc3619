// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request-level errors produced by the handlers before the service layer is
// reached. Callers can match against them with [errors.Is].
var (
	// ErrInvalidLimit is returned when the "limit" query parameter is not a
	// non-negative integer.
	ErrInvalidLimit = errors.New("invalid `limit` query parameter")

	// ErrMissingOnlineFlag is returned when a connectivity signal does not
	// carry the "online" field.
	ErrMissingOnlineFlag = errors.New("connectivity signal without `online` field")

	// ErrPreferencesDisabled is returned when the handler was built without a
	// preferences store.
	ErrPreferencesDisabled = errors.New("preferences are not configured")
)
