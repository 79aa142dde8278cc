// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condition describes the physical state of a registered item. The set is
// open: values other than the predefined ones are accepted and stored as is.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// ProductRecord is a single registered sale/listing. It carries no
// identifier and no sync marker: a record is pending exactly when it is a
// member of the local pending queue.
type ProductRecord struct {
	// Client is the buyer the item was registered for.
	Client Client `json:"client"`

	// Item describes the product itself.
	Item Item `json:"item"`

	// RegisteredAt is set once at creation and never changes.
	RegisteredAt time.Time `json:"registered_at"`
}

// Client holds buyer contact information. All fields are free text.
type Client struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Item holds the product part of a [ProductRecord].
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`

	// ExpiryDate is kept as the calendar date string entered by the user
	// (YYYY-MM-DD), empty when the product does not expire.
	ExpiryDate string `json:"expiry_date,omitempty"`

	// Price is the unit price, never negative.
	Price decimal.Decimal `json:"price"`

	// Currency is an ISO 4217 code such as "USD".
	Currency string `json:"currency"`

	// Quantity is at least 1.
	Quantity int `json:"quantity"`

	Condition Condition `json:"condition"`

	HomeDelivery     bool `json:"home_delivery"`
	WarrantyIncluded bool `json:"warranty_included"`

	// WarrantyMonths is meaningful only when WarrantyIncluded is set.
	WarrantyMonths int `json:"warranty_months"`
}

// Total returns Price multiplied by Quantity.
func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewProductRecord stamps a record with the given registration time and
// normalises warranty months for items sold without warranty. The time is
// kept in UTC at microsecond precision, the resolution PostgreSQL stores,
// so a record compares equal to the copy the server hands back.
func NewProductRecord(client Client, item Item, registeredAt time.Time) ProductRecord {
	if !item.WarrantyIncluded {
		item.WarrantyMonths = 0
	}
	return ProductRecord{
		Client:       client,
		Item:         item,
		RegisteredAt: registeredAt.UTC().Truncate(time.Microsecond),
	}
}

// Equal reports whether two records describe the same registration.
// Records have no identity, so every field takes part in the comparison.
func (p ProductRecord) Equal(other ProductRecord) bool {
	return p.Client == other.Client &&
		p.RegisteredAt.Equal(other.RegisteredAt) &&
		p.Item.Name == other.Item.Name &&
		p.Item.Description == other.Item.Description &&
		p.Item.Origin == other.Item.Origin &&
		p.Item.ExpiryDate == other.Item.ExpiryDate &&
		p.Item.Price.Equal(other.Item.Price) &&
		p.Item.Currency == other.Item.Currency &&
		p.Item.Quantity == other.Item.Quantity &&
		p.Item.Condition == other.Item.Condition &&
		p.Item.HomeDelivery == other.Item.HomeDelivery &&
		p.Item.WarrantyIncluded == other.Item.WarrantyIncluded &&
		p.Item.WarrantyMonths == other.Item.WarrantyMonths
}

// ProductFilter narrows a product listing on the server.
type ProductFilter struct {
	// Search matches item name, item description or client name,
	// case-insensitively. Empty matches everything.
	Search string

	// Condition restricts results to one condition. Empty means all.
	Condition Condition

	// Limit caps the number of results; zero means no limit.
	Limit uint64

	// Offset skips that many results in newest-first order.
	Offset uint64
}
