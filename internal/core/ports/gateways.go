package ports

import (
	"context"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// The gateways translate UI actions into calls against the external
// restaurant backend. Persistence, business validation and authorization all
// live behind them; this service never second-guesses a backend decision.
// Calls that the backend protects take the bearer token explicitly, sourced
// from the session manager.

// AuthGateway wraps the backend's login endpoint.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token. Both the bare {token}
	// and the richer {success, token, user} response shapes are accepted.
	Login(ctx context.Context, email, password string) (string, error)
}

// MenuItemGateway wraps the backend's menu item resource.
type MenuItemGateway interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int64) (*domain.MenuItem, error)
	Create(ctx context.Context, token string, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, token string, id int64, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, token string, id int64) error
}

// OrderGateway wraps the backend's order resource.
type OrderGateway interface {
	List(ctx context.Context, token string) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, token string, order domain.Order) (*domain.Order, error)
	Update(ctx context.Context, token string, id int64, order domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, token string, id int64) error
}

// UserGateway wraps the backend's user resource. Create doubles as signup and
// needs no token.
type UserGateway interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, token string, id int64, user domain.User) (*domain.User, error)
	Delete(ctx context.Context, token string, id int64) error
}

// RoleGateway wraps the backend's role resource.
type RoleGateway interface {
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, token string, role domain.Role) (*domain.Role, error)
}

// CustomerGateway wraps the backend's customer resource.
type CustomerGateway interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, token string, id int64, customer domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, token string, id int64) error
}
