// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-product-sync/models"
)

// validate checks invariants that hold for both runtimes. Role-specific
// rules live on [ClientConfig] and [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RateLimit < 0 || cfg.Adapter.RateBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidAdapterConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if isMemoryDSN(cfg.Storage.DSN) || isMemoryDSN(cfg.Storage.CacheDSN) {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DSN == cfg.Storage.CacheDSN {
		return fmt.Errorf("%w: cache must not share the catalog database", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if _, err := url.ParseRequestURI(cfg.Connectivity.ProbeURL); err != nil || cfg.Connectivity.ProbeTimeout <= 0 {
		return ErrInvalidConnectivityConfigs
	}

	if cfg.Cache.Version == "" {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}
	switch cfg.Workers.ReconcileMode {
	case models.ReconcileResend, models.ReconcileReference:
	default:
		return fmt.Errorf("%w: unknown reconcile mode %q", ErrInvalidWorkerConfigs, cfg.Workers.ReconcileMode)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	return nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.Contains(dsn, "memory")
}
