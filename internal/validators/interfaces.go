// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks product records and catalog filters before
// they reach storage or the network.
//
// Validation is presence-and-range only: required client fields, a
// non-negative decimal price, an ISO 4217 currency, a positive quantity and
// a known condition. Field names may scope a call to part of a record.
package validators

import "context"

// Validator validates a value, optionally only the named fields of it.
// Unsupported value types yield [ErrUnsupportedType].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
