package utils

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Every HTTPClient forwards the trace ID found in the request context as
// the [TraceIDHeader] header.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithRateLimit(10, 5))
//	resp, err := client.R().SetContext(ctx).Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption customises an [HTTPClient] at construction time.
type HTTPClientOption func(*HTTPClient)

// WithRateLimit caps outbound requests to limit per second with the given
// burst. Requests wait for a token and fail when the request context ends
// first. A non-positive limit leaves the client unlimited.
func WithRateLimit(limit float64, burst int) HTTPClientOption {
	return func(c *HTTPClient) {
		if limit <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}

		limiter := rate.NewLimiter(rate.Limit(limit), burst)
		c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if err := limiter.Wait(req.Context()); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}
			return nil
		})
	}
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{Client: resty.New()}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if traceID, ok := GetTraceIDFromContext(req.Context()); ok {
			req.SetHeader(TraceIDHeader, traceID)
		}
		return nil
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}
