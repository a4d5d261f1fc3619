package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaleResult_Accepted(t *testing.T) {
	tests := []struct {
		name   string
		result SaleResult
		want   bool
	}{
		{name: "completada", result: SaleResult{State: "completada"}, want: true},
		{name: "completed without id", result: SaleResult{State: "completed"}, want: true},
		{name: "case and spaces ignored", result: SaleResult{State: "  Completada "}, want: true},
		{name: "accepted", result: SaleResult{ID: "srv-1", State: "accepted"}, want: true},
		{name: "empty state with server id", result: SaleResult{ID: "srv-1"}, want: true},
		{name: "empty state without id", result: SaleResult{}, want: false},
		{name: "error with id", result: SaleResult{ID: "srv-1", State: "error"}, want: false},
		{name: "rechazada", result: SaleResult{ID: "srv-1", State: "rechazada"}, want: false},
		{name: "unknown state with id fails closed", result: SaleResult{ID: "srv-1", State: "anulada"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Accepted())
		})
	}
}

func TestSyncQueueItem_EligibleAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.True(t, SyncQueueItem{Status: SyncStatusPending}.EligibleAt(now), "unset next attempt is eligible")
	assert.True(t, SyncQueueItem{Status: SyncStatusPending, NextAttemptAt: &past}.EligibleAt(now))
	assert.True(t, SyncQueueItem{Status: SyncStatusPending, NextAttemptAt: &now}.EligibleAt(now))
	assert.False(t, SyncQueueItem{Status: SyncStatusPending, NextAttemptAt: &future}.EligibleAt(now))
	assert.False(t, SyncQueueItem{Status: SyncStatusError}.EligibleAt(now))
}

func TestNewSaleQueueItem(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	item := NewSaleQueueItem("sale-1", now)

	assert.Equal(t, SyncTypeSale, item.Type)
	assert.Equal(t, "sale-1", item.Payload.SaleID)
	assert.Equal(t, SyncStatusPending, item.Status)
	assert.Zero(t, item.Tries)
	assert.True(t, item.EligibleAt(now))
}

func TestAppBuildInfo_String(t *testing.T) {
	assert.Equal(t, "version=1.0.0 date=N/A commit=abc", NewAppBuildInfo("1.0.0", "", "abc").String())
}
