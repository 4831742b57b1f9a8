package backend

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// MenuItemGateway wraps the backend's /menuitems resource. Descriptions are
// sanitized on the way in: the backend stores whatever admins typed, clients
// get plain text.
type MenuItemGateway struct {
	client    *Client
	sanitizer *bluemonday.Policy
}

func NewMenuItemGateway(client *Client) *MenuItemGateway {
	return &MenuItemGateway{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (g *MenuItemGateway) List(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := g.client.get(ctx, "/menuitems", "", &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Description = g.sanitizer.Sanitize(items[i].Description)
	}
	return items, nil
}

func (g *MenuItemGateway) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := g.client.get(ctx, fmt.Sprintf("/menuitems/%d", id), "", &item); err != nil {
		return nil, notFound(err, domain.ErrMenuItemNotFound)
	}
	item.Description = g.sanitizer.Sanitize(item.Description)
	return &item, nil
}

func (g *MenuItemGateway) Create(ctx context.Context, token string, item domain.MenuItem) (*domain.MenuItem, error) {
	var created domain.MenuItem
	if err := g.client.post(ctx, "/menuitems", token, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *MenuItemGateway) Update(ctx context.Context, token string, id int64, item domain.MenuItem) (*domain.MenuItem, error) {
	var updated domain.MenuItem
	if err := g.client.put(ctx, fmt.Sprintf("/menuitems/%d", id), token, item, &updated); err != nil {
		return nil, notFound(err, domain.ErrMenuItemNotFound)
	}
	return &updated, nil
}

func (g *MenuItemGateway) Delete(ctx context.Context, token string, id int64) error {
	return notFound(g.client.delete(ctx, fmt.Sprintf("/menuitems/%d", id), token), domain.ErrMenuItemNotFound)
}
