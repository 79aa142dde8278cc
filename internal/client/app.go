package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync/atomic"

	"github.com/MKhiriev/go-product-sync/internal/adapter"
	"github.com/MKhiriev/go-product-sync/internal/cache"
	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/connectivity"
	localapi "github.com/MKhiriev/go-product-sync/internal/handler/http"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/server"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/internal/workers"
	"github.com/MKhiriev/go-product-sync/models"
)

// App is the client process.
type App struct {
	cfg *config.ClientConfig

	storages     *store.ClientStorages
	cacheStorage *cache.SQLiteStorage

	monitor  *connectivity.Monitor
	watcher  *connectivity.InterfaceWatcher
	services *service.ClientServices
	cache    *cache.Worker

	handler    http.Handler
	httpServer *server.HTTPServer

	// cacheReady is set once the current cache version is installed.
	cacheReady atomic.Bool

	logger *logger.Logger
}

// NewApp opens the client stores and wires every component. Nothing is
// started until Run.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	logger.Info().Msg("creating new client app...")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	cacheStorage, err := cache.NewSQLiteStorage(ctx, cfg.Storage.CacheDSN, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create cache storage: %w", err)
	}

	monitor := connectivity.NewMonitor(connectivity.NewHTTPProber(cfg.Connectivity, logger), logger)
	services := service.NewClientServices(storages.LocalStore, serverAdapter, monitor, cfg.Workers, logger)
	cacheWorker := cache.NewWorker(cfg.Cache, cacheStorage, services.Coordinator, logger)

	shell, err := newShellProxy(cfg.Cache.OriginURL, cacheWorker, logger)
	if err != nil {
		_ = cacheStorage.Close()
		_ = storages.Close()
		return nil, err
	}

	handler := localapi.NewLocalHandler(services, cacheWorker, shell, logger).Init()

	return &App{
		cfg:          cfg,
		storages:     storages,
		cacheStorage: cacheStorage,
		monitor:      monitor,
		watcher:      connectivity.NewInterfaceWatcher(cfg.Connectivity.SignalInterval, logger),
		services:     services,
		cache:        cacheWorker,
		handler:      handler,
		httpServer:   server.NewHTTPServer("local", handler, cfg.App.ListenAddress, 0, logger),
		logger:       logger,
	}, nil
}

// Run checks connectivity, loads the catalog, installs the asset cache and
// then serves the local API until ctx is done. Stores are closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	a.monitor.Subscribe(func(event models.ConnectivityEvent) {
		a.services.Coordinator.OnConnectivity(ctx, event)
		if event.Online && !a.cacheReady.Load() {
			a.installCache(ctx)
		}
	})

	online := a.monitor.Check(ctx)
	a.logger.Info().Bool("online", online).Msg("initial connectivity check")

	if err := a.services.Coordinator.Startup(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("startup finished with errors")
	}
	a.installCache(ctx)

	a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	err := workers.NewWorkers(
		a.httpServer,
		a.watcher,
		workers.Func(func(ctx context.Context) error {
			return a.monitor.Watch(ctx, a.watcher.C())
		}),
	).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

// installCache installs and activates the current cache version. A failure
// keeps the previous version active and is retried on the next transition
// to online.
func (a *App) installCache(ctx context.Context) {
	if err := a.cache.Start(ctx); err != nil {
		a.logger.Warn().Err(err).Str("version", a.cache.Version()).Msg("cache install failed, previous version stays active")
		return
	}
	a.cacheReady.Store(true)
}

func (a *App) close() {
	if err := a.cacheStorage.Close(); err != nil {
		a.logger.Err(err).Msg("error closing cache storage")
	}
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("error closing local storage")
	}
}

// newShellProxy forwards shell requests to origin through the cache worker,
// which answers from the cache when origin is unreachable. An empty origin
// disables the proxy.
func newShellProxy(origin string, transport http.RoundTripper, logger *logger.Logger) (http.Handler, error) {
	if origin == "" {
		return nil, nil
	}

	target, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid cache origin url: %w", err)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.Transport = transport
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn().Err(err).Str("url", r.URL.RequestURI()).Msg("shell unavailable")
		http.Error(w, "shell unavailable", http.StatusBadGateway)
	}
	return proxy, nil
}
