package http

import (
	"net/http"

	"github.com/MKhiriev/go-product-sync/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires the local API. Every path outside /local and /metrics goes
// to the shell proxy. Responses are not compressed here: proxied bodies
// keep the encoding chosen upstream.
func (h *LocalHandler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(h.logger), withLogging)

	router.Route("/local", func(r chi.Router) {
		r.Get("/products", h.listCatalog)
		r.Post("/products", h.createRecord)
		r.Delete("/products/{index}", h.deleteRecord)
		r.Get("/status", h.status)
		r.Post("/sync", h.manualSync)
		r.Post("/sync/background", h.backgroundSync)
		r.Get("/notifications", h.notifications)
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	if h.shell != nil {
		router.Handle("/*", h.shell)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
