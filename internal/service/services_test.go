package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorages(t *testing.T) *store.Storages {
	t.Helper()
	storages, err := store.NewStorages(context.Background(), ":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

func TestNewServices_RequiresBuildInfo(t *testing.T) {
	services, err := NewServices(newStorages(t), &fakeRemote{}, config.TerminalConfig{}, models.AppBuildInfo{}, metrics.New(), logger.Nop())

	assert.Nil(t, services)
	assert.ErrorIs(t, err, ErrBuildInfoNotSet)
}

func TestNewServices_WiresEveryService(t *testing.T) {
	services, err := NewServices(newStorages(t), &fakeRemote{}, config.TerminalConfig{},
		models.NewAppBuildInfo("1.0.0", "2026-03-01", "abc"), metrics.New(), logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, services.AppInfoService)
	assert.NotNil(t, services.CatalogService)
	assert.NotNil(t, services.SyncService)
	assert.NotNil(t, services.RecoveryService)
	assert.NotNil(t, services.StatusService)
	assert.NotNil(t, services.Connectivity)
	assert.NotNil(t, services.SyncJob)
	assert.False(t, services.Connectivity.IsOnline())
}

// Переход offline → online должен сам запускать drain.
func TestNewServices_OnlineTransitionDrainsQueue(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	storages := newStorages(t)
	services, err := NewServices(storages, remote, config.TerminalConfig{},
		models.NewAppBuildInfo("1.0.0", "", ""), metrics.New(), logger.Nop())
	require.NoError(t, err)

	services.SyncJob.Start(ctx, time.Hour)
	defer services.SyncJob.Stop()

	_, err = services.SyncService.EnqueueSale(ctx, newSale("s-1"))
	require.NoError(t, err)
	assert.Zero(t, remote.calls(), "offline sale stays local")

	services.Connectivity.SetOnline(true)

	assert.Eventually(t, func() bool {
		stats, err := services.StatusService.GetSyncStats(ctx)
		return err == nil && stats.Pending == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, remote.calls())
}
