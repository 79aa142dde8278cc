package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type scriptedFingerprint struct {
	mu     sync.Mutex
	values []string
	errs   []error
}

func (s *scriptedFingerprint) next() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return "steady", nil
	}
	v, err := s.values[0], s.errs[0]
	if len(s.values) > 1 {
		s.values, s.errs = s.values[1:], s.errs[1:]
	}
	return v, err
}

func newTestWatcher(fp *scriptedFingerprint) *InterfaceWatcher {
	w := NewInterfaceWatcher(5*time.Millisecond, logger.Nop())
	w.fingerprint = fp.next
	return w
}

func TestInterfaceWatcher_FiresOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	fp := &scriptedFingerprint{
		values: []string{"eth0=10.0.0.2", "eth0=10.0.0.2", "wlan0=192.168.1.5"},
		errs:   []error{nil, nil, nil},
	}
	w := newTestWatcher(fp)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.C():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire on interface change")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestInterfaceWatcher_SilentWhenUnchanged(t *testing.T) {
	defer goleak.VerifyNone(t)

	fp := &scriptedFingerprint{values: []string{"eth0"}, errs: []error{nil}}
	w := newTestWatcher(fp)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_ = w.Run(ctx)

	select {
	case <-w.C():
		t.Fatal("watcher fired without a change")
	default:
	}
}

func TestInterfaceWatcher_ErrorsDoNotFire(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("netlink unavailable")
	fp := &scriptedFingerprint{values: []string{"eth0", "", "eth0"}, errs: []error{nil, boom, nil}}
	w := newTestWatcher(fp)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_ = w.Run(ctx)

	select {
	case <-w.C():
		t.Fatal("watcher fired on a listing error")
	default:
	}
}

func TestInterfaceWatcher_SignalsCoalesce(t *testing.T) {
	w := NewInterfaceWatcher(time.Second, logger.Nop())
	w.fire()
	w.fire()
	w.fire()

	<-w.C()
	select {
	case <-w.C():
		t.Fatal("expected a single buffered signal")
	default:
	}
}

func TestInterfacesFingerprint_NoError(t *testing.T) {
	_, err := interfacesFingerprint()
	assert.NoError(t, err)
}
