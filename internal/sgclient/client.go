// Package sgclient is the HTTP client used for every call to the SG API.
package sgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

// maxResponseBytes caps how much of an SG response is read into memory.
const maxResponseBytes = 10 << 20

// Config holds the settings of a Client.
type Config struct {
	// BaseURL is the SG API root, e.g. https://sg.example.com. Empty is a configuration error on use.
	BaseURL string
	// Timeout bounds the whole request, including reading the body.
	Timeout time.Duration
	// ConnectTimeout bounds the TCP dial.
	ConnectTimeout time.Duration
	// MeterProvider, when set, receives client request metrics.
	MeterProvider metric.MeterProvider
}

// Client sends requests to SG and returns their raw responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a Client over a pooled transport with the configured timeouts.
func New(cfg Config) *Client {
	transport := cleanhttp.DefaultPooledTransport()
	if cfg.ConnectTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	var opts []otelhttp.Option
	if cfg.MeterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(cfg.MeterProvider))
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport, opts...),
		},
	}
}

// BaseURL returns the configured SG root without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request to path, relative to the base URL. A non-nil body is sent
// as JSON. Any response, whatever its status, is returned without error;
// failing to obtain one wraps ErrUpstreamUnavailable.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	headers map[string]string,
	body any,
) (*Response, error) {
	if c.baseURL == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "SG_BASE_URL not defined")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", apperrors.ErrUpstreamUnavailable, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %w", apperrors.ErrUpstreamUnavailable, method, path, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
