package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// AuthGateway wraps the backend's POST /login endpoint.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse accepts both contract revisions: the bare {token} shape and
// the richer {success, token, user} shape.
type loginResponse struct {
	Success *bool  `json:"success,omitempty"`
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := g.client.post(ctx, "/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && (be.StatusCode == http.StatusUnauthorized || be.StatusCode == http.StatusNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if resp.Success != nil && !*resp.Success {
		return "", domain.ErrInvalidCredentials
	}
	if resp.Token == "" {
		return "", domain.ErrInvalidCredentials
	}
	return resp.Token, nil
}
