package connectivity

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
)

// InterfaceWatcher turns link-layer changes of the host's network
// interfaces into a signal. It polls the interface table every interval and
// fires when the set of up interfaces or their addresses differs from the
// previous poll.
type InterfaceWatcher struct {
	interval    time.Duration
	fingerprint func() (string, error)
	signal      chan struct{}
	logger      *logger.Logger
}

// NewInterfaceWatcher returns a watcher polling every interval.
func NewInterfaceWatcher(interval time.Duration, log *logger.Logger) *InterfaceWatcher {
	return &InterfaceWatcher{
		interval:    interval,
		fingerprint: interfacesFingerprint,
		signal:      make(chan struct{}, 1),
		logger:      log.WithComponent("interface-watcher"),
	}
}

// C returns the signal channel. Pending signals coalesce: at most one is
// buffered.
func (w *InterfaceWatcher) C() <-chan struct{} {
	return w.signal
}

// Run polls until ctx is done.
func (w *InterfaceWatcher) Run(ctx context.Context) error {
	last, err := w.fingerprint()
	if err != nil {
		w.logger.Warn().Err(err).Msg("cannot list network interfaces")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := w.fingerprint()
			if err != nil {
				w.logger.Warn().Err(err).Msg("cannot list network interfaces")
				continue
			}
			if current == last {
				continue
			}
			last = current
			w.logger.Debug().Msg("network interfaces changed")
			w.fire()
		}
	}
}

func (w *InterfaceWatcher) fire() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

func interfacesFingerprint() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}

	parts := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		names := make([]string, 0, len(addrs))
		for _, a := range addrs {
			names = append(names, a.String())
		}
		sort.Strings(names)
		parts = append(parts, iface.Name+"="+strings.Join(names, ","))
	}
	sort.Strings(parts)

	return strings.Join(parts, ";"), nil
}
