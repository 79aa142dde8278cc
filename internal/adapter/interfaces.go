// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's view of the remote products API.
//
// The primary abstraction is [ServerAdapter], which decouples the sync
// coordinator from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Every failure is reported as one of two sentinels so callers can use
// [errors.Is] without knowing about HTTP: [ErrRemoteUnavailable] for network
// errors, timeouts and 5xx answers, [ErrRemoteRejected] for 4xx answers.
// Callers treat both as transient.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-product-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the remote
// products API.
type ServerAdapter interface {
	// FetchAll returns every product known to the remote, in the order the
	// remote lists them (newest first). Returns [ErrRemoteUnavailable] on
	// network failure or timeout.
	FetchAll(ctx context.Context) ([]models.ProductRecord, error)

	// Save stores a single record on the remote. Returns
	// [ErrRemoteUnavailable] or [ErrRemoteRejected] (wrapped).
	Save(ctx context.Context, record models.ProductRecord) error

	// Heartbeat pings the remote sync endpoint. It carries no data and is
	// used by the periodic sync job.
	Heartbeat(ctx context.Context) error
}
