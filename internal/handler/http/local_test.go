package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/cache"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/mock"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingSyncer struct {
	tags []string
	err  error
}

func (s *recordingSyncer) Sync(_ context.Context, tag string) error {
	s.tags = append(s.tags, tag)
	return s.err
}

type localFixture struct {
	coordinator *mock.MockSyncCoordinator
	notifier    *service.Notifier
	syncer      *recordingSyncer
	router      http.Handler
}

var fixedNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newLocalFixture(t *testing.T, shell http.Handler) localFixture {
	t.Helper()

	coordinator := mock.NewMockSyncCoordinator(gomock.NewController(t))
	notifier := service.NewNotifier(4, logger.Nop())
	syncer := &recordingSyncer{}

	h := NewLocalHandler(
		&service.ClientServices{Coordinator: coordinator, Notifier: notifier},
		syncer,
		shell,
		logger.Nop(),
	)
	h.now = func() time.Time { return fixedNow }

	return localFixture{coordinator: coordinator, notifier: notifier, syncer: syncer, router: h.Init()}
}

func (f localFixture) do(method, target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rr
}

func TestLocal_ListCatalog(t *testing.T) {
	f := newLocalFixture(t, nil)
	f.coordinator.EXPECT().Catalog().Return([]models.ProductRecord{testProduct("lamp")})

	rr := f.do(http.MethodGet, "/local/products", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.ProductRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "lamp", got[0].Item.Name)
}

func TestLocal_CreateRecord_StampsRegistrationTime(t *testing.T) {
	f := newLocalFixture(t, nil)

	input := testProduct("lamp")
	input.RegisteredAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(input)
	require.NoError(t, err)

	f.coordinator.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record models.ProductRecord) error {
			assert.True(t, record.RegisteredAt.Equal(fixedNow))
			assert.Equal(t, input.Client, record.Client)
			return nil
		})

	rr := f.do(http.MethodPost, "/local/products", string(payload))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestLocal_CreateRecord_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantCreate bool
		wantStatus int
	}{
		{name: "invalid JSON", body: "{", wantStatus: http.StatusBadRequest},
		{
			name:       "invalid product",
			body:       `{"client":{"name":""}}`,
			createErr:  fmt.Errorf("%w: client name", service.ErrInvalidProduct),
			wantCreate: true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage failure",
			body:       `{"client":{"name":"Ana"}}`,
			createErr:  errors.New("disk full"),
			wantCreate: true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLocalFixture(t, nil)
			if tt.wantCreate {
				f.coordinator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tt.createErr)
			}

			rr := f.do(http.MethodPost, "/local/products", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestLocal_DeleteRecord(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m *mock.MockSyncCoordinator)
		wantStatus int
	}{
		{
			name: "deleted",
			path: "/local/products/2",
			setup: func(m *mock.MockSyncCoordinator) {
				m.EXPECT().Delete(gomock.Any(), 2).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "out of range",
			path: "/local/products/9",
			setup: func(m *mock.MockSyncCoordinator) {
				m.EXPECT().Delete(gomock.Any(), 9).Return(fmt.Errorf("%w: 9", service.ErrCatalogIndexOutOfRange))
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "negative index", path: "/local/products/-1", setup: func(*mock.MockSyncCoordinator) {}, wantStatus: http.StatusBadRequest},
		{name: "not a number", path: "/local/products/abc", setup: func(*mock.MockSyncCoordinator) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLocalFixture(t, nil)
			tt.setup(f.coordinator)

			rr := f.do(http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestLocal_Status(t *testing.T) {
	f := newLocalFixture(t, nil)
	f.coordinator.EXPECT().Status(gomock.Any()).Return(models.SyncStatus{
		Online: true, State: models.SyncStateIdle, Catalog: 3, Pending: 1,
	}, nil)

	rr := f.do(http.MethodGet, "/local/status", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"online":true,"state":"idle","catalog":3,"pending":1}`, rr.Body.String())
}

func TestLocal_ManualSync(t *testing.T) {
	t.Run("partial failure still reports the result", func(t *testing.T) {
		f := newLocalFixture(t, nil)
		f.coordinator.EXPECT().Reconcile(gomock.Any()).
			Return(models.ReconcileResult{Drained: 2, Synced: 1, Requeued: 1}, errors.New("remote unavailable"))

		rr := f.do(http.MethodPost, "/local/sync", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"drained":2,"synced":1,"requeued":1,"merged":0}`, rr.Body.String())
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newLocalFixture(t, nil)
		f.coordinator.EXPECT().Reconcile(gomock.Any()).Return(models.ReconcileResult{}, context.Canceled)

		rr := f.do(http.MethodPost, "/local/sync", "")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestLocal_BackgroundSync(t *testing.T) {
	f := newLocalFixture(t, nil)

	rr := f.do(http.MethodPost, "/local/sync/background", "")
	assert.Equal(t, http.StatusAccepted, rr.Code)

	rr = f.do(http.MethodPost, "/local/sync/background?tag=other", "")
	assert.Equal(t, http.StatusAccepted, rr.Code)

	assert.Equal(t, []string{cache.SyncTag, "other"}, f.syncer.tags)
}

func TestLocal_BackgroundSync_WithoutSyncer(t *testing.T) {
	coordinator := mock.NewMockSyncCoordinator(gomock.NewController(t))
	coordinator.EXPECT().Reconcile(gomock.Any()).Return(models.ReconcileResult{}, nil).Times(1)

	h := NewLocalHandler(&service.ClientServices{Coordinator: coordinator}, nil, nil, logger.Nop())
	router := h.Init()

	for _, target := range []string{"/local/sync/background", "/local/sync/background?tag=unknown"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusAccepted, rr.Code)
	}
}

func TestLocal_Notifications(t *testing.T) {
	f := newLocalFixture(t, nil)

	rr := f.do(http.MethodGet, "/local/notifications", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	f.notifier.Notify(models.NotificationWarning, "working offline")
	rr = f.do(http.MethodGet, "/local/notifications", "")

	var got []models.Notification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationWarning, got[0].Level)
	assert.Equal(t, "working offline", got[0].Message)
}

func TestLocal_ShellProxy(t *testing.T) {
	shell := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("shell:" + r.URL.Path))
	})
	f := newLocalFixture(t, shell)

	rr := f.do(http.MethodGet, "/style.css", "")

	assert.Equal(t, "shell:/style.css", rr.Body.String())
}

func TestLocal_NoShell(t *testing.T) {
	f := newLocalFixture(t, nil)

	rr := f.do(http.MethodGet, "/index.html", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLocal_WrongMethod(t *testing.T) {
	f := newLocalFixture(t, nil)

	rr := f.do(http.MethodPut, "/local/status", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
