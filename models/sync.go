package models

// SyncStats is the queue health shown by the UI.
type SyncStats struct {
	Pending int `json:"pending"`
	Error   int `json:"error"`
}

// DrainReport summarises one drain cycle.
type DrainReport struct {
	// Skipped is set when the cycle did nothing because the terminal was
	// offline or no entry was eligible.
	Skipped bool `json:"skipped"`

	// Submitted is the number of sales sent to the remote side.
	Submitted int `json:"submitted"`

	// Synced is the number of sales the remote side accepted.
	Synced int `json:"synced"`

	// Retrying is the number of entries rescheduled with backoff.
	Retrying int `json:"retrying"`

	// Failed is the number of entries that reached the error state.
	Failed int `json:"failed"`

	// Orphaned is the number of queue rows dropped because their sale was missing.
	Orphaned int `json:"orphaned"`
}

// RecoveryReport is the outcome of the recovery routine.
type RecoveryReport struct {
	// Reset is the number of error entries moved back to pending.
	Reset int `json:"reset"`

	// Requeued is the number of synced sales that had no queue trail and
	// were queued again.
	Requeued int `json:"requeued"`

	// Recovered is Reset + Requeued.
	Recovered int `json:"recovered"`
}
