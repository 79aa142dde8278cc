package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantSize   int
		wantBody   string
	}{
		{
			name:       "initial state",
			write:      func(http.ResponseWriter) {},
			wantStatus: 0,
		},
		{
			name: "explicit status",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusAccepted)
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "second WriteHeader is ignored",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "write implies 200",
			write: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("[]"))
			},
			wantStatus: http.StatusOK,
			wantSize:   2,
			wantBody:   "[]",
		},
		{
			name: "size accumulates over writes",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("catalog "))
				_, _ = w.Write([]byte("index"))
				_, _ = w.Write(nil)
			},
			wantStatus: http.StatusNotFound,
			wantSize:   len("catalog index"),
			wantBody:   "catalog index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			rw := &responseWriter{ResponseWriter: rr}

			tt.write(rw)

			assert.Equal(t, tt.wantStatus, rw.status)
			assert.Equal(t, tt.wantSize, rw.size)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestResponseWriter_HeadersReachUnderlyingWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	rw.Header().Set("Content-Type", "application/json")

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	require.Same(t, rr, rw.Unwrap())
	assert.NoError(t, http.NewResponseController(rw).Flush())
	assert.True(t, rr.Flushed)
}
