package connectivity

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
)

// HTTPProber issues HEAD requests against a fixed URL.
type HTTPProber struct {
	client  *utils.HTTPClient
	url     string
	timeout time.Duration
	logger  *logger.Logger
}

// NewHTTPProber builds an HTTPProber from the connectivity settings.
// Redirects are not followed: a redirect is already proof of reachability.
func NewHTTPProber(cfg config.ClientConnectivity, log *logger.Logger) *HTTPProber {
	client := utils.NewHTTPClient()
	client.SetRedirectPolicy(noRedirects{})

	return &HTTPProber{
		client:  client,
		url:     cfg.ProbeURL,
		timeout: cfg.ProbeTimeout,
		logger:  log.WithComponent("prober"),
	}
}

// Probe implements [Prober]. The response status is not inspected.
func (p *HTTPProber) Probe(ctx context.Context) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetDoNotParseResponse(true).
		Head(p.url)
	if resp != nil && resp.RawBody() != nil {
		_ = resp.RawBody().Close()
	}
	if err != nil && (resp == nil || resp.RawResponse == nil) {
		p.logger.Debug().Err(err).Str("url", p.url).Msg("probe failed")
		return false
	}

	return true
}

type noRedirects struct{}

func (noRedirects) Apply(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
