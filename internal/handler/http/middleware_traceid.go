package http

import (
	"net/http"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/rs/zerolog"
)

// withTraceID reuses the caller's X-Trace-ID or generates one, stores it in
// the request context next to a child logger carrying the trace_id field,
// and echoes it in the response.
func withTraceID(base *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var traceID string
			if traceIDFromRequestHeader := r.Header.Get(utils.TraceIDHeader); traceIDFromRequestHeader != "" {
				traceID = traceIDFromRequestHeader
			} else {
				traceID = utils.NewTraceID()
			}

			l := base.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			ctx = utils.WithTraceID(ctx, traceID)
			r = r.WithContext(l.WithContext(ctx))

			w.Header().Set(utils.TraceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
