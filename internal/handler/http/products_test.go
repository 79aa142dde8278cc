package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/mock"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newProductsHandler(t *testing.T) (*Handler, *mock.MockProductService) {
	t.Helper()
	products := mock.NewMockProductService(gomock.NewController(t))
	return &Handler{
		services: &service.Services{ProductService: products},
		logger:   logger.Nop(),
	}, products
}

func TestParseProductFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.ProductFilter
		wantErr error
	}{
		{name: "empty query", query: "", want: models.ProductFilter{}},
		{
			name:  "all parameters",
			query: "search=+lamp+&condition=used&limit=10&offset=20",
			want:  models.ProductFilter{Search: "lamp", Condition: models.ConditionUsed, Limit: 10, Offset: 20},
		},
		{name: "negative limit", query: "limit=-1", wantErr: ErrInvalidQueryParam},
		{name: "non-numeric offset", query: "offset=ten", wantErr: ErrInvalidQueryParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := parseProductFilter(query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListProducts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(m *mock.MockProductService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "nil result is an empty array",
			query: "",
			setup: func(m *mock.MockProductService) {
				m.EXPECT().List(gomock.Any(), models.ProductFilter{}).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:  "filter is forwarded",
			query: "?search=lamp&condition=new&limit=5",
			setup: func(m *mock.MockProductService) {
				m.EXPECT().
					List(gomock.Any(), models.ProductFilter{Search: "lamp", Condition: models.ConditionNew, Limit: 5}).
					Return([]models.ProductRecord{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:       "bad limit never reaches the service",
			query:      "?limit=abc",
			setup:      func(m *mock.MockProductService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "invalid filter",
			query: "?limit=100000",
			setup: func(m *mock.MockProductService) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: limit", service.ErrInvalidFilter))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "storage failure",
			query: "",
			setup: func(m *mock.MockProductService) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, store.ErrExecutingQuery)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, products := newProductsHandler(t)
			tt.setup(products)

			rr := httptest.NewRecorder()
			h.listProducts(rr, httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestRegisterProduct(t *testing.T) {
	record := testProduct("lamp")
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       string
		setup      func(m *mock.MockProductService)
		wantStatus int
	}{
		{
			name: "created",
			body: string(payload),
			setup: func(m *mock.MockProductService) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ any, got models.ProductRecord) error {
						assert.True(t, record.Equal(got))
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid JSON",
			body:       "{",
			setup:      func(m *mock.MockProductService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "rejected by validation",
			body: string(payload),
			setup: func(m *mock.MockProductService) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: price", service.ErrInvalidProduct))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: string(payload),
			setup: func(m *mock.MockProductService) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(errors.Join(store.ErrProductNotSaved))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, products := newProductsHandler(t)
			tt.setup(products)

			rr := httptest.NewRecorder()
			h.registerProduct(rr, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(fmt.Errorf("wrap: %w", service.ErrInvalidProduct)))
	assert.Equal(t, http.StatusNotFound, statusFromError(service.ErrCatalogIndexOutOfRange))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("unknown")))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(store.ErrExecutingStatement))
	assert.Equal(t, http.StatusServiceUnavailable,
		statusFromError(fmt.Errorf("%w: %w", store.ErrStoreUnavailable, store.ErrExecutingStatement)))
}
