package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-product-sync/models"
)

// ConnectivityState reports the last corroborated online flag. It is
// satisfied by the connectivity monitor.
type ConnectivityState interface {
	Online() bool
}

// SyncCoordinator owns the client catalog and decides when the pending
// queue is flushed. All flows are serialised: two of them never run at the
// same time.
type SyncCoordinator interface {
	// Startup loads the catalog (remote when online, local otherwise),
	// persists it and reconciles when records are still pending.
	Startup(ctx context.Context) error

	// Create registers a new record. When online it is saved remotely
	// first; on failure or offline it is queued. The record is added to
	// the catalog in every case. Returns ErrInvalidProduct for invalid
	// input and storage errors only.
	Create(ctx context.Context, record models.ProductRecord) error

	// Delete removes the catalog entry at index (0 is the newest) and drops
	// it from the pending queue if it was never synced.
	Delete(ctx context.Context, index int) error

	// Reconcile flushes the pending queue according to the configured
	// mode. Resend removes only delivered records; reference drains it.
	Reconcile(ctx context.Context) (models.ReconcileResult, error)

	// Heartbeat pings the remote when online.
	Heartbeat(ctx context.Context) error

	// OnConnectivity reacts to a connectivity transition.
	OnConnectivity(ctx context.Context, event models.ConnectivityEvent)

	// Catalog returns a copy of the in-memory catalog, newest first.
	Catalog() []models.ProductRecord

	// Status returns a snapshot of the coordinator.
	Status(ctx context.Context) (models.SyncStatus, error)
}

// ClientSyncJob runs the coordinator heartbeat on a fixed interval.
type ClientSyncJob interface {
	// Start launches the background goroutine. It stops any previously
	// running job first. A non-positive interval defaults to 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the goroutine and waits for it to exit. Safe to call
	// when the job is not running.
	Stop()
}
