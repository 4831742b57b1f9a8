package backend

import (
	"context"
	"fmt"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// CustomerGateway wraps the backend's /customers resource.
type CustomerGateway struct {
	client *Client
}

func NewCustomerGateway(client *Client) *CustomerGateway {
	return &CustomerGateway{client: client}
}

func (g *CustomerGateway) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := g.client.get(ctx, "/customers", "", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (g *CustomerGateway) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	if err := g.client.get(ctx, fmt.Sprintf("/customers/%d", id), "", &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *CustomerGateway) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	var created domain.Customer
	if err := g.client.post(ctx, "/customers", "", customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *CustomerGateway) Update(ctx context.Context, token string, id int64, customer domain.Customer) (*domain.Customer, error) {
	var updated domain.Customer
	if err := g.client.put(ctx, fmt.Sprintf("/customers/%d", id), token, customer, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *CustomerGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.client.delete(ctx, fmt.Sprintf("/customers/%d", id), token)
}
