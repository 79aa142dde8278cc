package http

import (
	"net/http"

	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(h.logger), withLogging, withGZip)

	router.With(h.signResponse).Get("/products", h.listProducts)
	router.With(h.verifyHashing).Post("/products", h.registerProduct)

	router.Get("/api/sync/heartbeat", h.heartbeat)
	router.Get("/api/version/", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// application shell: index, stylesheet, script, icons, offline page
	if h.staticDir != "" {
		shell := h.serveShell()
		router.Get("/*", shell)
		router.Head("/*", shell)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
