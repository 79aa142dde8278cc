package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/logger"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// HTTPServer is an [http.Server] with a context-driven lifecycle.
type HTTPServer struct {
	name   string
	server *http.Server

	logger *logger.Logger
}

// NewHTTPServer prepares a server for handler on addr. A positive
// requestTimeout bounds reading the request and writing the response.
func NewHTTPServer(name string, handler http.Handler, addr string, requestTimeout time.Duration, logger *logger.Logger) *HTTPServer {
	return &HTTPServer{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ReadTimeout:       requestTimeout,
			WriteTimeout:      requestTimeout,
		},
		logger: logger.WithComponent(name + "-http"),
	}
}

// Run listens on the configured address and serves until ctx is done or
// the listener fails.
func (h *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%s server listen: %w", h.name, err)
	}
	return h.serve(ctx, ln)
}

func (h *HTTPServer) serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		h.logger.Info().Str("addr", ln.Addr().String()).Msg("Launching HTTP server")
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server Serve: %w", h.name, err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		h.Shutdown()
		return <-errCh
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// at most defaultShutdownTimeout.
func (h *HTTPServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
		return
	}
	h.logger.Info().Msg("HTTP server Shutdown")
}
