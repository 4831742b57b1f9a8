// Package imagesearch queries a third-party photo API (Unsplash-compatible)
// for menu item illustrations. Outbound requests go through an SSRF-guarded
// HTTP client; failures degrade to "no images found" at the call site.
package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/doyensec/safeurl"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

const defaultPerPage = 9

// Client calls the photo search API with Client-ID auth.
type Client struct {
	endpoint   string
	accessKey  string
	perPage    int
	httpClient *http.Client
	logger     zerolog.Logger
}

// New builds a Client whose outbound requests are restricted to public
// http/https hosts. The safeurl dialer re-validates resolved IPs, so DNS
// rebinding cannot steer a search at internal infrastructure.
func New(endpoint, accessKey string, perPage int, timeout time.Duration, logger zerolog.Logger) *Client {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	return newWithHTTPClient(endpoint, accessKey, perPage, safeurl.Client(cfg).Client, logger)
}

func newWithHTTPClient(endpoint, accessKey string, perPage int, httpClient *http.Client, logger zerolog.Logger) *Client {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &Client{
		endpoint:   endpoint,
		accessKey:  accessKey,
		perPage:    perPage,
		httpClient: httpClient,
		logger:     logger,
	}
}

type searchResponse struct {
	Results []struct {
		ID   string `json:"id"`
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns up to limit image candidates for term. The per-request page
// size is capped at the configured maximum.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]ports.ImageResult, error) {
	if limit <= 0 || limit > c.perPage {
		limit = c.perPage
	}

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("query", term)
	q.Set("per_page", strconv.Itoa(limit))
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ImageSearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("image search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ImageSearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("image search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ImageSearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.ImageSearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]ports.ImageResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, ports.ImageResult{
			ID:       r.ID,
			ThumbURL: r.URLs.Small,
			FullURL:  r.URLs.Regular,
		})
	}

	metrics.ImageSearchesTotal.WithLabelValues("ok").Inc()
	c.logger.Debug().Str("term", term).Int("results", len(results)).Msg("image search completed")
	return results, nil
}
