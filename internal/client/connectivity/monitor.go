// Package connectivity tracks whether the remote service is reachable.
// A single Monitor owns the online flag; everything that gates on
// connectivity reads it through IsOnline or reacts through OnChange.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultProbeInterval is how often Run probes the service health endpoint
const DefaultProbeInterval = 15 * time.Second

// Pinger probes the remote service.
// The API client satisfies this with its health check.
type Pinger interface {
	Health(ctx context.Context) error
}

// Monitor holds the current connectivity state and notifies subscribers
// on transitions. It starts online: the first probe corrects the
// assumption quickly, and an optimistic start avoids queueing the very
// first mutation on a healthy network.
type Monitor struct {
	pinger    Pinger
	logger    *slog.Logger
	callbacks []func(online bool)
	interval  time.Duration

	mu     sync.Mutex
	online bool
}

func NewMonitor(pinger Pinger, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		logger:   logger,
		online:   true,
	}
}

// IsOnline reports the last observed connectivity state
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// OnChange registers a callback fired on every online/offline transition.
// Callbacks run synchronously from the goroutine that observed the
// transition, so they must not block. Register before calling Run.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// SetOnline records a connectivity observation. Transitions fire the
// registered callbacks; repeated observations of the same state do not.
// Callers other than Run may report too: an API request that fails with
// a connection error is as good an observation as a probe.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	callbacks := make([]func(bool), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	if online {
		m.logger.Info("connectivity restored")
	} else {
		m.logger.Warn("connectivity lost")
	}

	for _, fn := range callbacks {
		fn(online)
	}
}

// Run probes the health endpoint on a ticker until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := m.pinger.Health(probeCtx)
	m.SetOnline(err == nil)
}
