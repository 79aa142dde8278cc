package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/mock"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "semantic version", version: "1.2.3"},
		{name: "build metadata", version: "v2.0.0-rc.1+build.5"},
		{name: "empty", version: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInfo := mock.NewMockAppInfoService(gomock.NewController(t))
			appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(tt.version)

			h := NewHandler(&service.Services{AppInfoService: appInfo}, &config.ServerConfig{}, logger.Nop())

			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.version, rr.Body.String())
		})
	}
}
