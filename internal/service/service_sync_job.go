package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
)

type syncJob struct {
	syncService  SyncService
	connectivity Connectivity

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a syncJob that calls syncService.Drain on a ticker and
// on demand. The job is idle until Start is called.
func NewSyncJob(syncService SyncService, connectivity Connectivity, logger *logger.Logger) SyncJob {
	return &syncJob{syncService: syncService, connectivity: connectivity, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that drains every interval while online.
// If interval is zero or negative it defaults to 5 seconds. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.ctx = jobCtx
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.connectivity.IsOnline() {
					j.drain(jobCtx, "interval")
				}
			}
		}
	}()
}

// TriggerDrainIfOnline implements SyncJob. The drain runs in a goroutine
// tracked by Stop; overlapping cycles collapse inside Drain.
func (j *syncJob) TriggerDrainIfOnline() {
	if !j.connectivity.IsOnline() {
		return
	}

	j.mu.Lock()
	ctx := j.ctx
	if ctx == nil || ctx.Err() != nil {
		j.mu.Unlock()
		return
	}
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.drain(ctx, "trigger")
	}()
}

// Stop implements SyncJob. It cancels the background goroutines' context and
// blocks until all of them have fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.ctx = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) drain(ctx context.Context, source string) {
	_, err := j.syncService.Drain(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrDrainInProgress):
		j.logger.Debug().Str("source", source).Msg("drain already running")
	default:
		j.logger.Warn().Err(err).Str("source", source).Msg("drain cycle aborted")
	}
}
