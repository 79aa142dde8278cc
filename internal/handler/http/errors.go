// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while parsing requests. Callers can match against
// them with [errors.Is].
var (
	// ErrInvalidQueryParam is returned when a numeric query parameter of
	// GET /products (limit, offset) is not a non-negative integer.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrInvalidCatalogIndex is returned by the local API when the index
	// path segment is not a non-negative integer.
	ErrInvalidCatalogIndex = errors.New("invalid catalog index")

	// ErrMissingHash is returned when request signing is enabled and the
	// HashSHA256 header is absent.
	ErrMissingHash = errors.New("missing `HashSHA256` header")

	// ErrHashMismatch is returned when the HashSHA256 header does not match
	// the request body.
	ErrHashMismatch = errors.New("integrity check failed")
)
