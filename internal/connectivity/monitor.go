package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/MKhiriev/go-product-sync/models"
)

// Monitor owns the online flag. The zero value is not usable; use
// [NewMonitor].
type Monitor struct {
	prober Prober
	now    func() time.Time

	// checkMu serialises probes so that events are emitted in the order
	// the flag changed.
	checkMu sync.Mutex

	mu          sync.RWMutex
	online      bool
	initialized bool
	subscribers []func(models.ConnectivityEvent)

	logger *logger.Logger
}

// NewMonitor returns a Monitor that starts offline until the first Check.
func NewMonitor(prober Prober, log *logger.Logger) *Monitor {
	return &Monitor{
		prober: prober,
		now:    time.Now,
		logger: log.WithComponent("connectivity"),
	}
}

// Online reports the last corroborated state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe registers fn for transition events. fn runs on the goroutine
// that performed the check and must not call Check.
func (m *Monitor) Subscribe(fn func(models.ConnectivityEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Check probes the network, stores the result and notifies subscribers when
// the flag flipped. The very first check only establishes the initial state
// and emits nothing. It returns the new state.
func (m *Monitor) Check(ctx context.Context) bool {
	m.checkMu.Lock()
	defer m.checkMu.Unlock()

	online := m.prober.Probe(ctx)

	m.mu.Lock()
	changed := m.initialized && m.online != online
	m.online = online
	m.initialized = true
	subs := append([]func(models.ConnectivityEvent){}, m.subscribers...)
	m.mu.Unlock()

	metrics.SetOnline(online)
	if !changed {
		return online
	}

	event := models.ConnectivityEvent{Online: online, At: m.now()}
	m.logger.Info().Bool("online", online).Msg("connectivity changed")
	for _, fn := range subs {
		fn(event)
	}

	return online
}

// Watch re-checks connectivity every time signal fires until ctx is done or
// signal is closed.
func (m *Monitor) Watch(ctx context.Context, signal <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-signal:
			if !ok {
				return nil
			}
			m.Check(ctx)
		}
	}
}
