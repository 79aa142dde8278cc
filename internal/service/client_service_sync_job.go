package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
)

// Heartbeater is the part of the coordinator the sync job drives.
type Heartbeater interface {
	Heartbeat(ctx context.Context) error
}

type clientSyncJob struct {
	coordinator Heartbeater

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that calls Heartbeat on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(coordinator Heartbeater, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{coordinator: coordinator, logger: log.WithComponent("sync-job")}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls Heartbeat every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called. Failures are logged and wait for
// the next tick.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
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
				if err := j.coordinator.Heartbeat(jobCtx); err != nil {
					j.logger.Debug().Err(err).Msg("periodic sync tick failed")
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
