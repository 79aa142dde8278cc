package config

import (
	"os"
	"time"
)

// Default values applied before any other configuration source.
const (
	DefaultServerAddress      = "localhost:8080"
	DefaultClientAddress      = "localhost:8081"
	DefaultRequestTimeout     = 15 * time.Second
	DefaultProbeURL           = "https://www.google.com/favicon.ico"
	DefaultProbeTimeout       = 5 * time.Second
	DefaultSignalInterval     = 2 * time.Second
	DefaultSyncInterval       = 5 * time.Minute
	DefaultCacheVersion       = "productos-cache-v2"
	DefaultReconcileMode      = "resend"
	DefaultLocalDSN           = "catalog.db"
	DefaultCacheDSN           = "catalog-cache.db"
	DefaultBrokerExchange     = "catalog.topic"
	DefaultAdapterRateLimit   = 10
	DefaultAdapterRateBurst   = 5
	DefaultServerStaticAssets = "web"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			Local: Local{
				DSN:      DefaultLocalDSN,
				CacheDSN: DefaultCacheDSN,
			},
			StaticDir: DefaultServerStaticAssets,
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
			RateLimit:      DefaultAdapterRateLimit,
			RateBurst:      DefaultAdapterRateBurst,
		},
		Connectivity: Connectivity{
			ProbeURL:       DefaultProbeURL,
			ProbeTimeout:   DefaultProbeTimeout,
			SignalInterval: DefaultSignalInterval,
		},
		Cache: Cache{
			Version: DefaultCacheVersion,
		},
		Client: Client{
			ListenAddress: DefaultClientAddress,
		},
		Workers: Workers{
			SyncInterval:  DefaultSyncInterval,
			ReconcileMode: DefaultReconcileMode,
		},
		Broker: Broker{
			Exchange: DefaultBrokerExchange,
		},
	}
}

func osArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}
