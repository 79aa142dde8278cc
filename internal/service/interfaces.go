// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-product-sync/models"
)

// ProductService is the server-side contract for registered products.
type ProductService interface {
	// Register validates record, stores it and publishes a
	// product.registered event. Publishing failures are logged only.
	// Returns ErrInvalidProduct (wrapped) for invalid input.
	Register(ctx context.Context, record models.ProductRecord) error

	// List returns products newest first, narrowed by filter.
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductRecord, error)
}

// AppInfoService exposes static application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
