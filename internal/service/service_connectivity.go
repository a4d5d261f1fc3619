package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
)

// Pinger is the health check the monitor probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type connectivityMonitor struct {
	pinger  Pinger
	online  atomic.Bool
	metrics *metrics.Metrics

	hooksMu sync.Mutex
	hooks   []func()

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewConnectivityMonitor creates a monitor that starts offline.
func NewConnectivityMonitor(pinger Pinger, m *metrics.Metrics, logger *logger.Logger) ConnectivityMonitor {
	if m == nil {
		m = metrics.New()
	}
	return &connectivityMonitor{pinger: pinger, metrics: m, logger: logger}
}

func (c *connectivityMonitor) IsOnline() bool {
	return c.online.Load()
}

func (c *connectivityMonitor) SetOnline(online bool) {
	was := c.online.Swap(online)
	c.metrics.SetOnline(online)
	if was == online {
		return
	}

	c.logger.Info().Bool("online", online).Msg("connectivity changed")
	if !online {
		return
	}

	c.hooksMu.Lock()
	hooks := append([]func(){}, c.hooks...)
	c.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (c *connectivityMonitor) OnOnline(fn func()) {
	c.hooksMu.Lock()
	c.hooks = append(c.hooks, fn)
	c.hooksMu.Unlock()
}

func (c *connectivityMonitor) Probe(ctx context.Context) bool {
	err := c.pinger.Ping(ctx)
	if err != nil {
		c.logger.Debug().Err(mapAdapterError(err)).Msg("health probe failed")
	}
	c.SetOnline(err == nil)
	return err == nil
}

// probe is Probe for the background loop: a probe interrupted by shutdown
// leaves the flag as it was.
func (c *connectivityMonitor) probe(ctx context.Context, timeout time.Duration) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := c.pinger.Ping(probeCtx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		c.logger.Debug().Err(mapAdapterError(err)).Msg("health probe failed")
	}
	c.SetOnline(err == nil)
}

// Start probes right away and then every interval (10 seconds when interval
// is not positive) until ctx is cancelled or Stop is called.
func (c *connectivityMonitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	c.Stop()

	c.mu.Lock()
	monitorCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			c.probe(monitorCtx, interval)

			select {
			case <-monitorCtx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (c *connectivityMonitor) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}
