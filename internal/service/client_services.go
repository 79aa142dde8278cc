package service

import (
	"github.com/MKhiriev/go-product-sync/internal/adapter"
	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/internal/validators"
)

type ClientServices struct {
	Notifier    *Notifier
	Coordinator SyncCoordinator
	SyncJob     ClientSyncJob
}

func NewClientServices(localStore store.LocalStore, serverAdapter adapter.ServerAdapter, connectivity ConnectivityState, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	notifier := NewNotifier(DefaultNotificationBuffer, logger)
	coordinator := NewSyncCoordinator(
		localStore,
		serverAdapter,
		connectivity,
		validators.NewProductValidator(),
		notifier,
		cfg.ReconcileMode,
		logger,
	)

	return &ClientServices{
		Notifier:    notifier,
		Coordinator: coordinator,
		SyncJob:     NewClientSyncJob(coordinator, logger),
	}
}
