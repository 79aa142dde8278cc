package config

import (
	"fmt"
	"time"
)

// ServerConfig is the server view of [StructuredConfig].
type ServerConfig struct {
	// HashKey verifies the HashSHA256 request header when non-empty.
	HashKey string
	// Version is reported by the version endpoint when build info is absent.
	Version string
	// HTTPAddress is the listen address.
	HTTPAddress string
	// RequestTimeout bounds a single request.
	RequestTimeout time.Duration
	// DSN is the PostgreSQL connection string.
	DSN string
	// StaticDir holds the application shell.
	StaticDir string
	// Broker configures optional event publishing.
	Broker Broker
}

// GetServerConfig builds and validates the server configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps the fields relevant to the server runtime.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		HashKey:        cfg.App.HashKey,
		Version:        cfg.App.Version,
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		StaticDir:      cfg.Storage.StaticDir,
		Broker:         cfg.Broker,
	}
}
