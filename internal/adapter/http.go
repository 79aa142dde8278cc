package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/MKhiriev/go-product-sync/models"
)

const (
	productsPath  = "/products"
	heartbeatPath = "/api/sync/heartbeat"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	signer *utils.Signer

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL, request
// timeout and outbound rate limit. Outbound bodies are signed with the
// application hash key when one is configured.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(utils.WithRateLimit(adapterCfg.RateLimit, adapterCfg.RateBurst))
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{
		client: client,
		signer: utils.NewSigner(appCfg.HashKey),
		logger: logger.WithComponent("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchAll implements [ServerAdapter]. It GETs /products and decodes the
// JSON array. When the response carries a HashSHA256 header and a hash key
// is configured, the body is verified before decoding.
func (h *httpServerAdapter) FetchAll(ctx context.Context) ([]models.ProductRecord, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(productsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch products request: %v", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	body := resp.Body()
	if sig := resp.Header().Get(utils.HashHeader); sig != "" && !h.signer.Verify(body, sig) {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, ErrIntegrity)
	}

	var records []models.ProductRecord
	if err = json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decode products response: %v", ErrRemoteUnavailable, err)
	}
	if records == nil {
		records = []models.ProductRecord{}
	}

	h.logger.Debug().Int("count", len(records)).Msg("fetched remote catalog")
	return records, nil
}

// Save implements [ServerAdapter]. It POSTs the record to /products with a
// HashSHA256 header over the exact bytes sent.
func (h *httpServerAdapter) Save(ctx context.Context, record models.ProductRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if sig := h.signer.Sign(payload); sig != "" {
		req.SetHeader(utils.HashHeader, sig)
	}

	resp, err := req.Post(productsPath)
	if err != nil {
		return fmt.Errorf("%w: save product request: %v", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

// Heartbeat implements [ServerAdapter]. It GETs /api/sync/heartbeat.
func (h *httpServerAdapter) Heartbeat(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(heartbeatPath)
	if err != nil {
		return fmt.Errorf("%w: heartbeat request: %v", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}
