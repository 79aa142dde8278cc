package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-product-sync/models"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey is the HMAC key used to sign outbound payloads.
	HashKey string
	// ListenAddress is where the local API and shell proxy listen.
	ListenAddress string
	// LogPath is the client log file.
	LogPath string
}

// ClientAdapter holds network settings used by the remote client.
type ClientAdapter struct {
	// HTTPAddress is the remote products API address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// RateLimit caps outbound requests per second; zero disables it.
	RateLimit float64
	// RateBurst is the limiter bucket size.
	RateBurst int
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DSN is the SQLite file holding the catalog and pending queue.
	DSN string
	// CacheDSN is the SQLite file holding cache regions.
	CacheDSN string
}

// ClientConnectivity configures the reachability probe.
type ClientConnectivity struct {
	ProbeURL       string
	ProbeTimeout   time.Duration
	SignalInterval time.Duration
}

// ClientCache configures the asset cache.
type ClientCache struct {
	// Version is the active cache region tag.
	Version string
	// OriginURL is where shell assets are fetched from.
	OriginURL string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the heartbeat runs.
	SyncInterval time.Duration
	// ReconcileMode selects how drained pending records are handled.
	ReconcileMode models.ReconcileMode
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App          ClientApp
	Adapter      ClientAdapter
	Storage      ClientStorage
	Connectivity ClientConnectivity
	Cache        ClientCache
	Workers      ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	origin := cfg.Cache.OriginURL
	if origin == "" {
		origin = cfg.Adapter.HTTPAddress
	}
	if origin != "" && !strings.Contains(origin, "://") {
		origin = "http://" + origin
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey:       cfg.App.HashKey,
			ListenAddress: cfg.Client.ListenAddress,
			LogPath:       cfg.Client.LogPath,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RateLimit:      cfg.Adapter.RateLimit,
			RateBurst:      cfg.Adapter.RateBurst,
		},
		Storage: ClientStorage{
			DSN:      cfg.Storage.Local.DSN,
			CacheDSN: cfg.Storage.Local.CacheDSN,
		},
		Connectivity: ClientConnectivity{
			ProbeURL:       cfg.Connectivity.ProbeURL,
			ProbeTimeout:   cfg.Connectivity.ProbeTimeout,
			SignalInterval: cfg.Connectivity.SignalInterval,
		},
		Cache: ClientCache{
			Version:   cfg.Cache.Version,
			OriginURL: origin,
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			ReconcileMode: models.ReconcileMode(cfg.Workers.ReconcileMode),
		},
	}
}
