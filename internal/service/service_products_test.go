// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/mock"
	"github.com/MKhiriev/go-product-sync/internal/validators"
	"github.com/MKhiriev/go-product-sync/models"
)

func newTestProductService(t *testing.T) (ProductService, *mock.MockProductRepository, *mock.MockPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := mock.NewMockProductRepository(ctrl)
	pub := mock.NewMockPublisher(ctrl)
	return NewProductService(repo, validators.NewProductValidator(), pub, logger.Nop()), repo, pub
}

func product(name string, at time.Time) models.ProductRecord {
	return models.NewProductRecord(
		models.Client{Name: "Client " + name, IDNumber: "ID-" + name, Phone: "555", Address: "Street"},
		models.Item{
			Name:      name,
			Price:     decimal.RequireFromString("10.50"),
			Currency:  "USD",
			Quantity:  2,
			Condition: models.ConditionUsed,
		},
		at,
	)
}

func TestProductService_Register_SavesAndPublishes(t *testing.T) {
	svc, repo, pub := newTestProductService(t)
	ctx := context.Background()
	p := product("lamp", time.Unix(100, 0))

	gomock.InOrder(
		repo.EXPECT().SaveProduct(ctx, p).Return(nil),
		pub.EXPECT().ProductRegistered(ctx, p).Return(nil),
	)

	require.NoError(t, svc.Register(ctx, p))
}

func TestProductService_Register_PublishFailureIsNotReturned(t *testing.T) {
	svc, repo, pub := newTestProductService(t)
	ctx := context.Background()
	p := product("lamp", time.Unix(100, 0))

	repo.EXPECT().SaveProduct(ctx, p).Return(nil)
	pub.EXPECT().ProductRegistered(ctx, p).Return(errors.New("broker down"))

	assert.NoError(t, svc.Register(ctx, p))
}

func TestProductService_Register_InvalidIsRejectedBeforeStore(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	p := product("lamp", time.Unix(100, 0))
	p.Item.Quantity = 0

	err := svc.Register(context.Background(), p)

	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.ErrorIs(t, err, validators.ErrInvalidQuantity)
}

func TestProductService_Register_StoreError(t *testing.T) {
	svc, repo, _ := newTestProductService(t)
	ctx := context.Background()
	p := product("lamp", time.Unix(100, 0))
	boom := errors.New("db down")

	repo.EXPECT().SaveProduct(ctx, p).Return(boom)

	err := svc.Register(ctx, p)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidProduct)
}

func TestProductService_List(t *testing.T) {
	svc, repo, _ := newTestProductService(t)
	ctx := context.Background()
	filter := models.ProductFilter{Search: "lamp", Limit: 10}
	want := []models.ProductRecord{product("lamp", time.Unix(100, 0))}

	repo.EXPECT().ListProducts(ctx, filter).Return(want, nil)

	got, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProductService_List_InvalidFilter(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	_, err := svc.List(context.Background(), models.ProductFilter{Limit: validators.MaxListLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestProductService_List_StoreError(t *testing.T) {
	svc, repo, _ := newTestProductService(t)
	ctx := context.Background()
	boom := errors.New("db down")

	repo.EXPECT().ListProducts(ctx, gomock.Any()).Return(nil, boom)

	_, err := svc.List(ctx, models.ProductFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestNewProductService_NilPublisherIsNop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockProductRepository(ctrl)
	svc := NewProductService(repo, validators.NewProductValidator(), nil, logger.Nop())

	p := product("lamp", time.Unix(100, 0))
	repo.EXPECT().SaveProduct(gomock.Any(), p).Return(nil)

	assert.NoError(t, svc.Register(context.Background(), p))
}
