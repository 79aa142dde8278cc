// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MKhiriev/go-product-sync/internal/logger"
)

// spyHeartbeater counts Heartbeat calls.
type spyHeartbeater struct {
	calls atomic.Int64
	err   error
}

func (s *spyHeartbeater) Heartbeat(_ context.Context) error {
	s.calls.Add(1)
	return s.err
}

func newTestJob(spy Heartbeater) ClientSyncJob {
	return NewClientSyncJob(spy, logger.Nop())
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	job := newTestJob(&spyHeartbeater{})
	require.NotNil(t, job)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_CallsHeartbeat(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyHeartbeater{}
	job := newTestJob(spy)

	// 10ms interval: about 5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "heartbeat should run several times, ran %d", got)
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyHeartbeater{}
	job := newTestJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls expected after Stop")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := newTestJob(&spyHeartbeater{})
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := newTestJob(&spyHeartbeater{})

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_Start_DefaultInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	for name, interval := range map[string]time.Duration{"zero": 0, "negative": -time.Second} {
		t.Run(name, func(t *testing.T) {
			spy := &spyHeartbeater{}
			job := newTestJob(spy)

			// falls back to 5 minutes: nothing within 20ms
			job.Start(context.Background(), interval)
			time.Sleep(20 * time.Millisecond)
			job.Stop()

			assert.Zero(t, spy.calls.Load())
		})
	}
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyHeartbeater{}
	job := newTestJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Positive(t, callsBefore)

	// Start on a running job stops the previous goroutine first
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	defer goleak.VerifyNone(t)

	job := newTestJob(&spyHeartbeater{})
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestClientSyncJob_HeartbeatError_DoesNotStopJob(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyHeartbeater{err: assert.AnError}
	job := newTestJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "errors must not stop the ticker, ran %d", got)
}
