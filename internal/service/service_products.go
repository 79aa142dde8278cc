// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-product-sync/internal/broker"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/internal/validators"
	"github.com/MKhiriev/go-product-sync/models"
)

type productService struct {
	repo      store.ProductRepository
	validator validators.Validator
	publisher broker.Publisher

	logger *logger.Logger
}

func NewProductService(repo store.ProductRepository, validator validators.Validator, publisher broker.Publisher, logger *logger.Logger) ProductService {
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	return &productService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		logger:    logger.WithComponent("product-service"),
	}
}

func (s *productService) Register(ctx context.Context, record models.ProductRecord) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, record); err != nil {
		log.Debug().Err(err).Str("func", "productService.Register").Msg("product rejected")
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	if err := s.repo.SaveProduct(ctx, record); err != nil {
		log.Err(err).Str("func", "productService.Register").Msg("error saving product")
		return fmt.Errorf("error saving product: %w", err)
	}
	metrics.ProductsRegistered.Inc()

	if err := s.publisher.ProductRegistered(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("func", "productService.Register").Msg("product stored but event was not published")
	}

	return nil
}

func (s *productService) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductRecord, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "productService.List").Msg("error listing products")
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}
