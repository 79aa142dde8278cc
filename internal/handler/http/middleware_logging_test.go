package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loggedRequest returns a request whose context carries a logger writing
// JSON lines to buf, the way withTraceID prepares it.
func loggedRequest(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(zerolog.New(buf).WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		handler    http.HandlerFunc
		wantStatus int
		wantSize   int
	}{
		{
			name:   "explicit status",
			method: http.MethodPost,
			target: "/products",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"ok":true}`))
			},
			wantStatus: http.StatusCreated,
			wantSize:   len(`{"ok":true}`),
		},
		{
			name:   "implicit 200 on write",
			method: http.MethodGet,
			target: "/products?search=lamp",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			},
			wantStatus: http.StatusOK,
			wantSize:   2,
		},
		{
			name:       "nothing written counts as 200",
			method:     http.MethodGet,
			target:     "/api/sync/heartbeat",
			handler:    func(http.ResponseWriter, *http.Request) {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "error status",
			method: http.MethodDelete,
			target: "/local/products/9",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "catalog index out of range", http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantSize:   len("catalog index out of range\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rr := httptest.NewRecorder()

			withLogging(tt.handler).ServeHTTP(rr, loggedRequest(tt.method, tt.target, &buf))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.target, entry["uri"])
			assert.Equal(t, tt.method, entry["method"])
			assert.EqualValues(t, tt.wantStatus, entry["status"])
			assert.EqualValues(t, tt.wantSize, entry["size"])
			assert.Contains(t, entry, "duration")
		})
	}
}

func TestWithLogging_PanicIsNotRecovered(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), loggedRequest(http.MethodGet, "/", &buf))
	})
}

func TestWithLogging_ObservesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(withLogging)
	router.Delete("/local/products/{index}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodDelete, "/local/products/{index}", "2xx")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/local/products/0", "/local/products/7"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRoutePattern_Unmatched(t *testing.T) {
	assert.Equal(t, unmatchedRoute, routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
