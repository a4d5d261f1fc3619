// Package workers runs the terminal's background jobs as one unit.
//
// A [Worker] is anything with a Start/Stop lifecycle; [Workers] starts them
// in order and stops them in reverse order so that a job never outlives the
// jobs it depends on.
package workers

import (
	"context"
	"time"
)

// Worker is a background job.
//
// Start must not block; the job runs in goroutines it owns until ctx is
// cancelled or Stop is called. Stop blocks until those goroutines exit.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// IntervalJob is a job driven by its own ticker, such as the sync job or the
// connectivity monitor.
type IntervalJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
