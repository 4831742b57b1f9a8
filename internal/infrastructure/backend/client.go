// Package backend implements the outbound gateways against the external
// restaurant REST backend. Each gateway is a thin translation layer: it never
// retries, never caches writes, and surfaces the backend's error message
// verbatim when one is present.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// Client is the shared HTTP plumbing for all resource gateways: JSON codec,
// bearer injection and error-envelope extraction.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// do performs one request. token is attached as a bearer credential when
// non-empty. body and out may be nil; out is filled from a 2xx JSON body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		metrics.BackendRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return &domain.BackendError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(data),
		}
	}
	metrics.BackendRequestDuration.WithLabelValues(method, "ok").Observe(time.Since(start).Seconds())

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// extractErrorMessage pulls the backend's message from its error envelope.
// Both {"error": …} and {"message": …} shapes occur; anything else yields an
// empty message and the caller's generic fallback applies.
func extractErrorMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

// notFound rewraps a backend 404 as the given domain sentinel so the error
// handler can map it deterministically.
func notFound(err, sentinel error) error {
	var be *domain.BackendError
	if errors.As(err, &be) && be.StatusCode == http.StatusNotFound {
		return sentinel
	}
	return err
}
