package service

import (
	"math"
	"time"
)

const (
	jitterLow  = 1.25
	jitterSpan = 0.5
)

// Backoff computes retry delays:
//
//	delay = min(Max, Min * 2^(tries-1) * jitter), jitter in [1.25, 1.75]
type Backoff struct {
	Min time.Duration
	Max time.Duration

	// Rand returns a uniform value in [0, 1).
	Rand func() float64
}

// Delay returns the wait before the next attempt of an entry that has failed
// tries times. tries below 1 is treated as 1.
func (b Backoff) Delay(tries int) time.Duration {
	if tries < 1 {
		tries = 1
	}

	r := b.Rand()
	if r < 0 || r >= 1 {
		r = 0
	}
	jitter := jitterLow + jitterSpan*r

	d := float64(b.Min) * math.Pow(2, float64(tries-1)) * jitter
	if math.IsInf(d, 0) || d >= float64(b.Max) {
		return b.Max
	}
	return time.Duration(d)
}
