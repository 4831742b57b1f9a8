package backend

import (
	"context"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// RoleGateway wraps the backend's /roles resource.
type RoleGateway struct {
	client *Client
}

func NewRoleGateway(client *Client) *RoleGateway {
	return &RoleGateway{client: client}
}

func (g *RoleGateway) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := g.client.get(ctx, "/roles", "", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (g *RoleGateway) Create(ctx context.Context, token string, role domain.Role) (*domain.Role, error) {
	var created domain.Role
	if err := g.client.post(ctx, "/roles", token, role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
