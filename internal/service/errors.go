package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("version is not specified")

	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidFilter  = errors.New("invalid product filter")

	ErrCatalogIndexOutOfRange = errors.New("catalog index out of range")
)
