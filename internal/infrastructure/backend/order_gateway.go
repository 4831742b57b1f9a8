package backend

import (
	"context"
	"fmt"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// OrderGateway wraps the backend's /orders resource.
type OrderGateway struct {
	client *Client
}

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) List(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := g.client.get(ctx, "/orders", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *OrderGateway) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := g.client.get(ctx, fmt.Sprintf("/orders/%d", id), "", &order); err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound)
	}
	return &order, nil
}

func (g *OrderGateway) Create(ctx context.Context, token string, order domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := g.client.post(ctx, "/orders", token, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *OrderGateway) Update(ctx context.Context, token string, id int64, order domain.Order) (*domain.Order, error) {
	var updated domain.Order
	if err := g.client.put(ctx, fmt.Sprintf("/orders/%d", id), token, order, &updated); err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound)
	}
	return &updated, nil
}

func (g *OrderGateway) Delete(ctx context.Context, token string, id int64) error {
	return notFound(g.client.delete(ctx, fmt.Sprintf("/orders/%d", id), token), domain.ErrOrderNotFound)
}
