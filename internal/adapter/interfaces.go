// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the terminal and the
// remote system of record.
//
// The primary abstraction is [RemoteAdapter], which decouples the sync engine
// and the catalog cache from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPRemoteAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of transport
// (e.g. [ErrUnauthorized] for 401, [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pos-terminal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter is the remote collaborator consumed by the terminal core.
type RemoteAdapter interface {
	// CreateSalesBatch submits sales in one request. On success the returned
	// slice is positionally aligned with sales; it may be shorter if the
	// server dropped entries. Any returned error is a transport failure for
	// the whole batch.
	CreateSalesBatch(ctx context.Context, sales []models.SaleRecord) ([]models.SaleResult, error)

	// FetchCatalogPage returns one page of the remote product catalog.
	FetchCatalogPage(ctx context.Context, req models.CatalogPageRequest) (models.CatalogPage, error)

	// Ping checks that the remote side is reachable and healthy.
	Ping(ctx context.Context) error
}
