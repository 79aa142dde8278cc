// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	zr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer zr.Close()
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

// echo answers with the (decoded) request body, or a fixed catalog.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	if len(body) == 0 {
		body = []byte(`[{"item":{"name":"lamp"}}]`)
	}
	w.Header().Set("Content-Length", "999")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
})

func TestGZip(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		gzipRequest    bool
		body           string
		wantStatus     int
		wantGzipped    bool
		wantBody       string
	}{
		{
			name:           "response compressed when accepted",
			acceptEncoding: "gzip",
			wantStatus:     http.StatusOK,
			wantGzipped:    true,
			wantBody:       `[{"item":{"name":"lamp"}}]`,
		},
		{
			name:           "gzip among several encodings",
			acceptEncoding: "deflate, gzip;q=1.0, br",
			wantStatus:     http.StatusOK,
			wantGzipped:    true,
			wantBody:       `[{"item":{"name":"lamp"}}]`,
		},
		{
			name:       "plain response without Accept-Encoding",
			wantStatus: http.StatusOK,
			wantBody:   `[{"item":{"name":"lamp"}}]`,
		},
		{
			name:        "gzip request body is decoded",
			gzipRequest: true,
			body:        `{"item":{"name":"chair"}}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"item":{"name":"chair"}}`,
		},
		{
			name:           "gzip both ways",
			acceptEncoding: "gzip",
			gzipRequest:    true,
			body:           `{"item":{"name":"desk"}}`,
			wantStatus:     http.StatusOK,
			wantGzipped:    true,
			wantBody:       `{"item":{"name":"desk"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(tt.body)
			if tt.gzipRequest {
				body = gzipped(t, tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "/products", body)
			if tt.gzipRequest {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rr := httptest.NewRecorder()
			withGZip(echo).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
				assert.Empty(t, rr.Header().Get("Content-Length"), "upstream length describes the plain body")
				assert.Equal(t, tt.wantBody, gunzip(t, rr.Body))
				return
			}
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(echo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGZip_CompressesRepetitiveCatalog(t *testing.T) {
	catalog := strings.Repeat(`{"item":{"name":"lamp","currency":"USD"}},`, 500)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalog))
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Less(t, rr.Body.Len(), len(catalog)/10)
	assert.Equal(t, catalog, gunzip(t, rr.Body))
}

func TestGZip_ImplicitWriteHeaderIsCompressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("v1.0.0"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "v1.0.0", gunzip(t, rr.Body))
}

func TestGZip_StatusWithoutBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodPost, "/local/sync/background", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestGZip_NothingWritten(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestGZip_PooledWritersUnderConcurrency(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()
			withGZip(echo).ServeHTTP(rr, req)
			assert.Equal(t, `[{"item":{"name":"lamp"}}]`, gunzip(t, rr.Body))
		}()
	}
	wg.Wait()
}

func TestWrappedReadCloser_Close(t *testing.T) {
	called := false
	rc := &wrappedReadCloser{Reader: strings.NewReader("x"), OnClose: func() { called = true }}
	assert.NoError(t, rc.Close())
	assert.True(t, called)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("x")}).Close())
}
