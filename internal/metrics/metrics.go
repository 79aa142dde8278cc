// Package metrics declares the Prometheus collectors shared by the catalog
// server and the offline-first client. Collectors register on the default
// registry and are exported through [Handler].
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts served requests by method, route pattern and
	// status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ProductsRegistered counts products accepted by the server.
	ProductsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_registered_total",
		Help: "Total number of products stored by the server",
	})

	// RecordsCreated counts records created on the client by outcome
	// (synced or pending).
	RecordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_client_records_created_total",
		Help: "Records created on the client by sync outcome",
	}, []string{"outcome"})

	// Reconciled counts reconciled records by what happened to them
	// (synced, requeued, merged).
	Reconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_client_reconciled_records_total",
		Help: "Pending records processed by reconciliation",
	}, []string{"result"})

	// PendingQueue is the size of the pending queue after the last
	// coordinator flow.
	PendingQueue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_client_pending_records",
		Help: "Current number of records waiting to be synced",
	})

	// Online is 1 when the last probe succeeded.
	Online = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_client_online",
		Help: "Connectivity state (1 online, 0 offline)",
	})

	// CacheFallbacks counts fetches answered from the cache or failed after
	// the network was unreachable (offline_page, cached_entry, miss).
	CacheFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_client_cache_fallbacks_total",
		Help: "Requests served from the asset cache after a network failure",
	}, []string{"kind"})

	// CacheInstalls counts cache installs by result (ok, failed).
	CacheInstalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_client_cache_installs_total",
		Help: "Asset cache install attempts by result",
	}, []string{"result"})
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, StatusClass(statusCode)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetOnline mirrors the connectivity flag.
func SetOnline(online bool) {
	if online {
		Online.Set(1)
		return
	}
	Online.Set(0)
}

// StatusClass buckets a status code into "2xx".."5xx".
func StatusClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
