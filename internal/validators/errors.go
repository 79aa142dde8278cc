package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyClientName     = errors.New("client name is required")
	ErrEmptyClientIDNumber = errors.New("client id number is required")
	ErrEmptyClientPhone    = errors.New("client phone is required")
	ErrEmptyClientAddress  = errors.New("client address is required")
	ErrEmptyItemName       = errors.New("item name is required")
	ErrEmptyCondition      = errors.New("item condition is required")
	ErrInvalidExpiryDate   = errors.New("invalid expiry date")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrInvalidCurrency     = errors.New("invalid ISO 4217 currency")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidWarranty     = errors.New("warranty months cannot be negative")
	ErrMissingRegisteredAt = errors.New("registration time is required")
	ErrInvalidLimit        = errors.New("invalid limit")
)
