package service

import (
	"math/rand"
	"time"
)

const (
	DefaultBatchSize     = 25
	DefaultMaxTries      = 3
	DefaultMinBackoff    = 5 * time.Second
	DefaultMaxBackoff    = 5 * time.Minute
	DefaultRemoteTimeout = 15 * time.Second

	// DefaultRecentSalesLimit caps RecentSales when no limit is given.
	DefaultRecentSalesLimit = 50

	catalogPageSize   = 100
	catalogMaxRecords = 5000
)

// SyncOptions tunes the sync engine. Zero fields take the defaults above.
type SyncOptions struct {
	BatchSize     int
	MaxTries      int
	MinBackoff    time.Duration
	MaxBackoff    time.Duration
	RemoteTimeout time.Duration

	// Clock returns the current time. Tests inject a fixed clock.
	Clock func() time.Time

	// Jitter returns a uniform value in [0, 1).
	Jitter func() float64
}

func (o SyncOptions) withDefaults() SyncOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.MaxTries <= 0 {
		o.MaxTries = DefaultMaxTries
	}
	if o.MinBackoff <= 0 {
		o.MinBackoff = DefaultMinBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
	if o.RemoteTimeout <= 0 {
		o.RemoteTimeout = DefaultRemoteTimeout
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Jitter == nil {
		o.Jitter = rand.Float64
	}
	return o
}
