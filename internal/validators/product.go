// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"

	"github.com/MKhiriev/go-product-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldClient       = "client"
	FieldItemName     = "item_name"
	FieldCondition    = "condition"
	FieldExpiryDate   = "expiry_date"
	FieldPrice        = "price"
	FieldCurrency     = "currency"
	FieldQuantity     = "quantity"
	FieldWarranty     = "warranty"
	FieldRegisteredAt = "registered_at"
	FieldLimit        = "limit"
)

// MaxListLimit caps a single product listing page.
const MaxListLimit = 1000

const expiryDateLayout = time.DateOnly

var productFields = []string{
	FieldClient, FieldItemName, FieldCondition, FieldExpiryDate, FieldPrice,
	FieldCurrency, FieldQuantity, FieldWarranty, FieldRegisteredAt,
}

// ProductValidator validates product records and listing filters.
type ProductValidator struct{}

// NewProductValidator constructs a ProductValidator.
func NewProductValidator() Validator {
	return &ProductValidator{}
}

// Validate dispatches on the dynamic type of obj. Both values and pointers
// of [models.ProductRecord] and [models.ProductFilter] are accepted.
func (v *ProductValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProductRecord:
		return v.validateProduct(ctx, value, fields...)
	case *models.ProductRecord:
		return v.validateProduct(ctx, *value, fields...)

	case models.ProductFilter:
		return v.validateFilter(ctx, value, fields...)
	case *models.ProductFilter:
		return v.validateFilter(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ProductValidator) validateProduct(_ context.Context, p models.ProductRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = productFields
	}

	for _, f := range fields {
		switch f {
		case FieldClient:
			if err := validateClient(p.Client); err != nil {
				return err
			}
		case FieldItemName:
			if blank(p.Item.Name) {
				return ErrEmptyItemName
			}
		case FieldCondition:
			if blank(string(p.Item.Condition)) {
				return ErrEmptyCondition
			}
		case FieldExpiryDate:
			if p.Item.ExpiryDate == "" {
				continue
			}
			if _, err := time.Parse(expiryDateLayout, p.Item.ExpiryDate); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidExpiryDate, p.Item.ExpiryDate)
			}
		case FieldPrice:
			if p.Item.Price.IsNegative() {
				return ErrNegativePrice
			}
		case FieldCurrency:
			if len(p.Item.Currency) != 3 {
				return fmt.Errorf("%w: %q", ErrInvalidCurrency, p.Item.Currency)
			}
			if _, err := currency.ParseISO(p.Item.Currency); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidCurrency, p.Item.Currency)
			}
		case FieldQuantity:
			if p.Item.Quantity < 1 {
				return ErrInvalidQuantity
			}
		case FieldWarranty:
			if p.Item.WarrantyIncluded && p.Item.WarrantyMonths < 0 {
				return ErrInvalidWarranty
			}
		case FieldRegisteredAt:
			if p.RegisteredAt.IsZero() {
				return ErrMissingRegisteredAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProductValidator) validateFilter(_ context.Context, f models.ProductFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit}
	}

	for _, field := range fields {
		switch field {
		case FieldLimit:
			if f.Limit > MaxListLimit {
				return fmt.Errorf("%w: max %d", ErrInvalidLimit, MaxListLimit)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateClient(c models.Client) error {
	switch {
	case blank(c.Name):
		return ErrEmptyClientName
	case blank(c.IDNumber):
		return ErrEmptyClientIDNumber
	case blank(c.Phone):
		return ErrEmptyClientPhone
	case blank(c.Address):
		return ErrEmptyClientAddress
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
