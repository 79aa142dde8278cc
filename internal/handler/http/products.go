package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/MKhiriev/go-product-sync/models"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listProducts").Msg("invalid query parameters")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	products, err := h.services.ProductService.List(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listProducts").Msg("error listing products")
		http.Error(w, "error listing products", statusFromError(err))
		return
	}
	if products == nil {
		products = []models.ProductRecord{}
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

func (h *Handler) registerProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var record models.ProductRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Str("func", "*Handler.registerProduct").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ProductService.Register(ctx, record); err != nil {
		log.Err(err).Str("func", "*Handler.registerProduct").Msg("error registering product")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

// parseProductFilter reads search, condition, limit and offset. Range
// checks are left to the product validator.
func parseProductFilter(query url.Values) (models.ProductFilter, error) {
	filter := models.ProductFilter{
		Search:    strings.TrimSpace(query.Get("search")),
		Condition: models.Condition(strings.TrimSpace(query.Get("condition"))),
	}

	var err error
	if filter.Limit, err = parseUintParam(query, "limit"); err != nil {
		return models.ProductFilter{}, err
	}
	if filter.Offset, err = parseUintParam(query, "offset"); err != nil {
		return models.ProductFilter{}, err
	}

	return filter, nil
}

func parseUintParam(query url.Values, name string) (uint64, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return value, nil
}
