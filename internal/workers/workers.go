package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/config"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
)

type Workers struct {
	workers []Worker

	mu      sync.Mutex
	running bool

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// NewTerminalWorkers builds the terminal's background jobs. The drain ticker
// starts before the connectivity probe: the first successful probe fires the
// online hook, and the hook can only drain on a running job.
func NewTerminalWorkers(services *service.Services, cfg config.TerminalWorkers, logger *logger.Logger) *Workers {
	return NewWorkers(logger,
		Every("sync", services.SyncJob, cfg.SyncInterval),
		Every("connectivity", services.Connectivity, cfg.ConnectivityInterval),
	)
}

// Start starts every worker in order. A second Start without Stop is a no-op.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	w.running = true
	w.logger.Info().Int("workers", len(w.workers)).Msg("background workers started")
}

// Stop stops every worker in reverse order.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.running = false
	w.logger.Info().Msg("background workers stopped")
}

type intervalWorker struct {
	name     string
	job      IntervalJob
	interval time.Duration
}

// Every adapts an [IntervalJob] to [Worker].
func Every(name string, job IntervalJob, interval time.Duration) Worker {
	return &intervalWorker{name: name, job: job, interval: interval}
}

func (w *intervalWorker) Start(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w *intervalWorker) Stop() {
	w.job.Stop()
}

func (w *intervalWorker) String() string {
	return w.name + "@" + w.interval.String()
}
