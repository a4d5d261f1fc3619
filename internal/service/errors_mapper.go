// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-pos-terminal/internal/adapter"
)

// mapAdapterError classifies a remote adapter error into a service error,
// keeping the original in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, adapter.ErrGatewayTimeout),
		errors.As(err, &netErr) && netErr.Timeout():
		sentinel = ErrRemoteTimeout

	case errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden):
		sentinel = ErrRemoteUnauthorized

	case errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable):
		sentinel = ErrRemoteUnavailable

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrConflict):
		sentinel = ErrRemoteRejected

	default:
		sentinel = ErrRemoteUnreachable
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
