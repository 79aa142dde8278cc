package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
)

// verifyHashing rejects a request whose body does not match its HashSHA256
// header. It is a pass-through when no hash key is configured.
func (h *Handler) verifyHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.Debug().Str("func", "*Handler.verifyHashing").Msg("checking hash begins")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		signature := r.Header.Get(utils.HashHeader)
		if signature == "" {
			log.Error().Str("func", "*Handler.verifyHashing").Msg("request is not signed")
			http.Error(w, ErrMissingHash.Error(), statusFromError(ErrMissingHash))
			return
		}

		if !h.signer.Verify(body, signature) {
			log.Error().Str("func", "*Handler.verifyHashing").
				Str("hash from request", signature).
				Str("hashed body", h.signer.Sign(body)).
				Msg("hashes are not equal")
			http.Error(w, ErrHashMismatch.Error(), statusFromError(ErrHashMismatch))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// signResponse buffers the downstream response and sets the HashSHA256
// header over the uncompressed body before anything is sent.
func (h *Handler) signResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		bw := &bufferedResponseWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		if bw.status == 0 {
			bw.status = http.StatusOK
		}
		body := bw.buf.Bytes()
		w.Header().Set(utils.HashHeader, h.signer.Sign(body))
		w.WriteHeader(bw.status)
		w.Write(body)
	})
}

type bufferedResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bufferedResponseWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.buf.Write(b)
}
