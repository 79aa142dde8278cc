package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidQueryParam:   http.StatusBadRequest,
	ErrInvalidCatalogIndex: http.StatusBadRequest,
	ErrMissingHash:         http.StatusBadRequest,
	ErrHashMismatch:        http.StatusBadRequest,

	service.ErrInvalidProduct:         http.StatusBadRequest,
	service.ErrInvalidFilter:          http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:  http.StatusBadRequest,
	service.ErrCatalogIndexOutOfRange: http.StatusNotFound,

	store.ErrStoreUnavailable:     http.StatusServiceUnavailable,
	store.ErrProductNotSaved:      http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError checks ErrStoreUnavailable first: a transient failure
// also wraps a statement sentinel mapped to 500.
func statusFromError(err error) int {
	if errors.Is(err, store.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
