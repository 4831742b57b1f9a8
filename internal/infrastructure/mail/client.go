// Package mail delivers order confirmation emails through a transactional
// email HTTP API. Delivery is fire-and-forget from the composer's point of
// view: a failed send is logged and counted, never surfaced to the customer.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// Client posts an order summary to an EmailJS-style send endpoint.
type Client struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(endpoint, serviceID, templateID, publicKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	Email        string      `json:"email"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Cost         costParams  `json:"cost"`
	Orders       []lineParam `json:"orders"`
}

type costParams struct {
	Total string `json:"total"`
}

type lineParam struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// SendOrderConfirmation posts the summary. With no endpoint configured the
// send is skipped silently, which keeps local development mail-free.
func (c *Client) SendOrderConfirmation(ctx context.Context, email ports.OrderEmail) error {
	if c.endpoint == "" {
		c.logger.Debug().Str("email", email.Email).Msg("mail endpoint not configured, skipping confirmation")
		return nil
	}

	payload := sendRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.publicKey,
		TemplateParams: templateParams{
			Email:        email.Email,
			CustomerName: email.CustomerName,
			Phone:        email.Phone,
			Cost:         costParams{Total: fmt.Sprintf("%.2f", email.Total)},
		},
	}
	for _, item := range email.Items {
		payload.TemplateParams.Orders = append(payload.TemplateParams.Orders, lineParam{
			Name:     item.Name,
			Price:    fmt.Sprintf("%.2f", item.Price),
			ImageURL: item.ImageURL,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send email: unexpected status %d", resp.StatusCode)
	}

	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	c.logger.Info().Str("email", email.Email).Msg("order confirmation sent")
	return nil
}
