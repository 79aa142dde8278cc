// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds persistence for both runtimes.
//
// The server keeps registered products in PostgreSQL ([ProductRepository]).
// The client keeps its catalog and pending-writes queue in a SQLite
// key-value table ([LocalStore]) under the keys [CatalogKey] and
// [PendingKey], each holding a JSON array.
package store

import (
	"context"

	"github.com/MKhiriev/go-product-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProductRepository persists products on the server.
type ProductRepository interface {
	// SaveProduct inserts one record. Duplicates are not detected.
	SaveProduct(ctx context.Context, record models.ProductRecord) error

	// ListProducts returns records newest first, narrowed by filter.
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductRecord, error)
}

// LocalStore persists the client catalog and the pending-writes queue.
//
// Reads never fail on corrupt data: an undecodable value is logged and
// read as empty. Errors are returned only for I/O failures.
type LocalStore interface {
	// LoadCatalog returns the stored catalog, newest first.
	LoadCatalog(ctx context.Context) ([]models.ProductRecord, error)

	// SaveCatalog overwrites the catalog. The write is durable on return.
	SaveCatalog(ctx context.Context, catalog []models.ProductRecord) error

	// EnqueuePending appends record to the end of the pending queue.
	EnqueuePending(ctx context.Context, record models.ProductRecord) error

	// DrainPending returns the whole pending queue and clears it in the
	// same transaction.
	DrainPending(ctx context.Context) ([]models.ProductRecord, error)

	// PeekPending returns the pending queue without clearing it.
	PeekPending(ctx context.Context) ([]models.ProductRecord, error)

	// RemovePending deletes the first queued record equal to record and
	// reports whether one was found.
	RemovePending(ctx context.Context, record models.ProductRecord) (bool, error)

	// AckPending removes one queued entry per confirmed record in a single
	// transaction and returns how many were found. Entries added after the
	// caller's read stay queued.
	AckPending(ctx context.Context, records []models.ProductRecord) (int, error)
}
