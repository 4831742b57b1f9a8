package backend

import (
	"context"
	"fmt"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// UserGateway wraps the backend's /users resource. Create doubles as the
// public signup endpoint and carries no token.
type UserGateway struct {
	client *Client
}

func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

func (g *UserGateway) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := g.client.get(ctx, "/users", "", &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (g *UserGateway) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := g.client.get(ctx, fmt.Sprintf("/users/%d", id), "", &user); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	user.Password = ""
	return &user, nil
}

func (g *UserGateway) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	var created domain.User
	if err := g.client.post(ctx, "/users", "", user, &created); err != nil {
		return nil, err
	}
	created.Password = ""
	return &created, nil
}

func (g *UserGateway) Update(ctx context.Context, token string, id int64, user domain.User) (*domain.User, error) {
	var updated domain.User
	if err := g.client.put(ctx, fmt.Sprintf("/users/%d", id), token, user, &updated); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	updated.Password = ""
	return &updated, nil
}

func (g *UserGateway) Delete(ctx context.Context, token string, id int64) error {
	return notFound(g.client.delete(ctx, fmt.Sprintf("/users/%d", id), token), domain.ErrUserNotFound)
}
