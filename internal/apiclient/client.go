// Package apiclient talks to the emissions statistics HTTP API.
//
// The API exposes three read-only endpoints: /countries, /statistics and
// /growth. Responses may be cached on disk through a ResponseCache so
// repeated dashboard invocations over the same country and range do not
// hit the network.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rshade/ghgdash/internal/cache"
	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/logging"
)

// Endpoint paths.
const (
	EndpointCountries  = "/countries"
	EndpointStatistics = "/statistics"
	EndpointGrowth     = "/growth"

	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 32 << 20
)

// ErrAPIStatus wraps every non-2xx response.
var ErrAPIStatus = errors.New("statistics API returned an error status")

// ResponseCache stores raw response bodies. *cache.FileStore satisfies it.
type ResponseCache interface {
	Get(key string) (*cache.CacheEntry, error)
	Set(key, endpoint string, data json.RawMessage) error
}

// Client is a statistics API client. The zero value is not usable; call New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      ResponseCache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCache enables response caching. A nil cache disables it.
func WithCache(rc ResponseCache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// rangeQuery builds the query shared by /statistics and /growth.
func rangeQuery(code string, r emissions.YearRange) url.Values {
	q := url.Values{}
	q.Set("country_code", code)
	q.Set("start_year", strconv.Itoa(r.Start))
	q.Set("end_year", strconv.Itoa(r.End))
	return q
}

// getJSON fetches endpoint?query and returns the raw body, consulting the
// cache first when one is configured.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	log := logging.FromContext(ctx)

	var key string
	if c.cache != nil {
		var err error
		key, err = cache.GenerateKey(cache.KeyParams{BaseURL: c.baseURL, Endpoint: endpoint, Query: query})
		if err == nil {
			if entry, getErr := c.cache.Get(key); getErr == nil {
				log.Debug().Ctx(ctx).
					Str("component", "apiclient").
					Str("endpoint", endpoint).
					Dur("age", entry.Age()).
					Msg("cache hit")
				return entry.Data, nil
			}
		}
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("component", "apiclient").
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: GET %s returned HTTP %d", ErrAPIStatus, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	if c.cache != nil && key != "" && json.Valid(body) {
		if setErr := c.cache.Set(key, endpoint, body); setErr != nil {
			log.Warn().Ctx(ctx).
				Str("component", "apiclient").
				Err(setErr).
				Msg("failed to cache API response")
		}
	}
	return body, nil
}
