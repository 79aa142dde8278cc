// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client. It is populated by merging defaults, environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the integrity hash key.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the server database, the client
	// local store and the client asset cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the catalog server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote products API settings used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Connectivity configures the reachability probe.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Cache configures the client asset cache.
	Cache Cache `envPrefix:"CACHE_"`

	// Client holds settings of the client local API.
	Client Client `envPrefix:"CLIENT_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Broker configures optional event publishing on the server.
	Broker Broker `envPrefix:"BROKER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Empty disables signing and verification.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the server PostgreSQL connection settings.
	DB DB `envPrefix:"DB_"`

	// Local holds the client SQLite store settings.
	Local Local `envPrefix:"LOCAL_"`

	// StaticDir is the directory with the application shell served by the
	// server (index, stylesheet, script, icons, offline page).
	// Env: STORAGE_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client-side database file locations.
type Local struct {
	// DSN is the SQLite file holding the catalog and the pending queue.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`

	// CacheDSN is the SQLite file holding cache regions. It is kept apart
	// from DSN so the cache never shares storage with the catalog.
	// Env: STORAGE_LOCAL_CACHE_DSN
	CacheDSN string `env:"CACHE_DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's view of the remote products API.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit caps outbound requests per second; zero disables limiting.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the limiter bucket size.
	// Env: ADAPTER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// Connectivity configures the reachability probe.
type Connectivity struct {
	// ProbeURL is the well-known endpoint hit with a HEAD request.
	// Env: CONNECTIVITY_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// ProbeTimeout bounds a single probe.
	// Env: CONNECTIVITY_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// SignalInterval is how often network interfaces are inspected for
	// link-layer changes.
	// Env: CONNECTIVITY_SIGNAL_INTERVAL
	SignalInterval time.Duration `env:"SIGNAL_INTERVAL"`
}

// Cache configures the asset cache.
type Cache struct {
	// Version is the cache region tag; regions with any other tag are
	// deleted on activation.
	// Env: CACHE_VERSION
	Version string `env:"VERSION"`

	// OriginURL is where shell assets are fetched from. Defaults to the
	// adapter address.
	// Env: CACHE_ORIGIN_URL
	OriginURL string `env:"ORIGIN_URL"`
}

// Client holds settings of the client process.
type Client struct {
	// ListenAddress is where the local API and shell proxy listen.
	// Env: CLIENT_LISTEN_ADDRESS
	ListenAddress string `env:"LISTEN_ADDRESS"`

	// LogPath is the client log file.
	// Env: CLIENT_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the heartbeat period of the sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ReconcileMode is "resend" or "reference".
	// Env: WORKERS_RECONCILE_MODE
	ReconcileMode string `env:"RECONCILE_MODE"`
}

// Broker configures event publishing on the server.
type Broker struct {
	// AMQPURL enables publishing of registered products when non-empty.
	// Env: BROKER_AMQP_URL
	AMQPURL string `env:"AMQP_URL"`

	// Exchange is the topic exchange events are published to.
	// Env: BROKER_EXCHANGE
	Exchange string `env:"EXCHANGE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. Later sources override earlier non-zero fields.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(osArgs()).
		withJSON().
		build()
}
