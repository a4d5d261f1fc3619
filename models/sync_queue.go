package models

import "time"

// SyncQueueStatus is the state of a queue entry.
type SyncQueueStatus string

const (
	// SyncStatusPending marks an entry that still has attempts left.
	SyncStatusPending SyncQueueStatus = "pending"

	// SyncStatusSynced marks a confirmed entry. Such rows are deleted right
	// away, the value exists for completeness of the state machine.
	SyncStatusSynced SyncQueueStatus = "synced"

	// SyncStatusError marks an entry that exhausted its attempts. It stays
	// parked until the recovery routine resets it.
	SyncStatusError SyncQueueStatus = "error"
)

// SyncQueueType is the kind of remote side effect a queue entry stands for.
type SyncQueueType string

// SyncTypeSale creates the referenced sale on the remote side.
const SyncTypeSale SyncQueueType = "sale"

// SyncQueuePayload references the record the queue entry is about.
type SyncQueuePayload struct {
	SaleID string `json:"saleId"`
}

// SyncQueueItem is one outstanding remote side effect.
//
// ID is a local sequence number and says nothing about business order;
// CreatedAt does.
type SyncQueueItem struct {
	ID            int64            `json:"id"`
	Type          SyncQueueType    `json:"type"`
	Payload       SyncQueuePayload `json:"payload"`
	Status        SyncQueueStatus  `json:"status"`
	Tries         int              `json:"tries"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	NextAttemptAt *time.Time       `json:"next_attempt_at,omitempty"`
	LastError     string           `json:"last_error,omitempty"`
}

// NewSaleQueueItem builds the pending entry that accompanies a freshly
// confirmed sale.
func NewSaleQueueItem(saleID string, now time.Time) SyncQueueItem {
	next := now
	return SyncQueueItem{
		Type:          SyncTypeSale,
		Payload:       SyncQueuePayload{SaleID: saleID},
		Status:        SyncStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		NextAttemptAt: &next,
	}
}

// EligibleAt reports whether the entry may be attempted at now.
func (q SyncQueueItem) EligibleAt(now time.Time) bool {
	if q.Status != SyncStatusPending {
		return false
	}
	return q.NextAttemptAt == nil || !q.NextAttemptAt.After(now)
}
