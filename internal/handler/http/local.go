package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/cache"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/MKhiriev/go-product-sync/models"
	"github.com/go-chi/chi/v5"
)

// BackgroundSyncer dispatches a background-sync tag. It is satisfied by
// [cache.Worker].
type BackgroundSyncer interface {
	Sync(ctx context.Context, tag string) error
}

// LocalHandler serves the client's loopback API.
type LocalHandler struct {
	coordinator service.SyncCoordinator
	notifier    *service.Notifier
	syncer      BackgroundSyncer
	shell       http.Handler
	now         func() time.Time

	logger *logger.Logger
}

// NewLocalHandler builds the local API over the client services. syncer
// and shell are optional: without a syncer background sync falls back to a
// direct reconciliation, without a shell only the API is served.
func NewLocalHandler(services *service.ClientServices, syncer BackgroundSyncer, shell http.Handler, logger *logger.Logger) *LocalHandler {
	logger.Info().Msg("local http handler created")
	return &LocalHandler{
		coordinator: services.Coordinator,
		notifier:    services.Notifier,
		syncer:      syncer,
		shell:       shell,
		now:         time.Now,
		logger:      logger,
	}
}

func (h *LocalHandler) listCatalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.coordinator.Catalog(), http.StatusOK)
}

// createRecord registers a record. registered_at is stamped here: any value
// sent by the caller is ignored.
func (h *LocalHandler) createRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.ProductRecord
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*LocalHandler.createRecord").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record := models.NewProductRecord(input.Client, input.Item, h.now())
	if err := h.coordinator.Create(ctx, record); err != nil {
		log.Err(err).Str("func", "*LocalHandler.createRecord").Msg("error creating record")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *LocalHandler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	index, err := parseCatalogIndex(chi.URLParam(r, "index"))
	if err != nil {
		log.Err(err).Str("func", "*LocalHandler.deleteRecord").Msg("invalid index")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err = h.coordinator.Delete(ctx, index); err != nil {
		log.Err(err).Str("func", "*LocalHandler.deleteRecord").Msg("error deleting record")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LocalHandler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.coordinator.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*LocalHandler.status").Msg("error reading status")
		http.Error(w, "error reading status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// manualSync reconciles right away and reports what happened. A partial
// failure still answers 200: the failed records stay pending.
func (h *LocalHandler) manualSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	result, err := h.coordinator.Reconcile(r.Context())
	if errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("func", "*LocalHandler.manualSync").Msg("sync cancelled")
		http.Error(w, "sync cancelled", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("func", "*LocalHandler.manualSync").Msg("sync finished with errors")
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// backgroundSync dispatches a sync tag (default sync-products) to the
// cache worker, the way a browser fires a background-sync event.
func (h *LocalHandler) backgroundSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	if tag == "" {
		tag = cache.SyncTag
	}

	var err error
	if h.syncer != nil {
		err = h.syncer.Sync(r.Context(), tag)
	} else if tag == cache.SyncTag {
		_, err = h.coordinator.Reconcile(r.Context())
	}
	if err != nil {
		log.Warn().Err(err).Str("func", "*LocalHandler.backgroundSync").Str("tag", tag).Msg("background sync finished with errors")
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *LocalHandler) notifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.notifier.Drain()
	if notifications == nil {
		notifications = []models.Notification{}
	}

	utils.WriteJSON(w, notifications, http.StatusOK)
}

func parseCatalogIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCatalogIndex, raw)
	}
	return index, nil
}
