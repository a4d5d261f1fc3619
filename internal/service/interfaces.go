// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the terminal core: the sync engine that drains
// the local queue into the remote system of record, the recovery routine, the
// status reporter, the catalog cache and the background triggers that start
// drain cycles.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-terminal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the sync engine.
type SyncService interface {
	// EnqueueSale records a confirmed sale together with its pending queue
	// entry in one transaction and deducts the sold quantities from the local
	// stock. A missing id is generated. The stored record is returned.
	EnqueueSale(ctx context.Context, sale models.SaleRecord) (models.SaleRecord, error)

	// Drain runs one drain cycle. It returns [ErrDrainInProgress] when another
	// cycle is running and a Skipped report when the terminal is offline or
	// nothing is eligible.
	Drain(ctx context.Context) (models.DrainReport, error)

	// RecentSales returns the newest sales for reprint and audit.
	RecentSales(ctx context.Context, limit int) ([]models.SaleRecord, error)
}

// RecoveryService repairs the queue.
type RecoveryService interface {
	// ForceRecovery resets parked entries and re-enqueues synced sales that
	// have no queue trail.
	ForceRecovery(ctx context.Context) (models.RecoveryReport, error)
}

// StatusService reports queue health without side effects on the tables.
type StatusService interface {
	GetSyncStats(ctx context.Context) (models.SyncStats, error)
}

// CatalogService is the offline catalog cache.
type CatalogService interface {
	// RefreshFromRemote replaces the local catalog with the active remote
	// products. Failures are logged and reported as false; the local rows are
	// left untouched in that case.
	RefreshFromRemote(ctx context.Context) bool

	// SeedIfEmpty refreshes from the remote side and falls back to the
	// bundled dataset when that fails and the local catalog is empty.
	SeedIfEmpty(ctx context.Context) error

	FindByBarcode(ctx context.Context, barcode string) (models.LocalProduct, error)
	Search(ctx context.Context, text string, limit int) ([]models.LocalProduct, error)

	// DeductStock decrements local stock for the sold lines, flooring at zero.
	DeductStock(ctx context.Context, lines []models.StockDeduction) error
}

// Connectivity reports whether the remote side is believed reachable.
type Connectivity interface {
	IsOnline() bool
}

// ConnectivityMonitor tracks the online flag from explicit signals and from
// periodic health probes.
type ConnectivityMonitor interface {
	Connectivity

	// SetOnline records an explicit connectivity signal. An offline to online
	// transition fires the OnOnline hooks.
	SetOnline(online bool)

	// OnOnline registers fn to be called on every offline to online transition.
	OnOnline(fn func())

	// Probe pings the remote side once and records the result.
	Probe(ctx context.Context) bool

	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// SyncJob owns the background drain triggers.
type SyncJob interface {
	// Start launches the periodic drain loop. Calling Start again restarts it.
	Start(ctx context.Context, interval time.Duration)

	// TriggerDrainIfOnline starts a drain cycle in the background unless the
	// terminal is offline or the job is not running. It never blocks.
	TriggerDrainIfOnline()

	// Stop cancels the loop and waits for every goroutine the job started.
	Stop()
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
