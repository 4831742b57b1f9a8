package ports

import (
	"context"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// LoginResult is returned by the session service after a successful login.
type LoginResult struct {
	SessionID string
	Token     string
	Roles     []string
	// MultiRole signals that the UI must route to role selection before
	// landing on a role-specific view.
	MultiRole bool
}

// SessionService owns the authentication token and the role set derived from
// it. Every route guard and navigation decision consults it.
type SessionService interface {
	// Login authenticates against the backend, decodes the returned token and
	// persists the session. A token whose role claim cannot be decoded still
	// logs in as anonymous rather than failing.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout destroys the persisted session; subsequent queries for the same
	// session ID return the anonymous session.
	Logout(ctx context.Context, sessionID string) error
	// Current rehydrates the session and revalidates its token. Expired or
	// undecodable tokens read as anonymous, never as an error.
	Current(ctx context.Context, sessionID string) (domain.Session, error)
	// SessionFromToken derives an unpersisted session directly from a bearer
	// token, for callers that present the token instead of a session ID.
	SessionFromToken(token string) domain.Session
	// SelectRole persists which of the principal's roles is active for this
	// browsing session. Fails with domain.ErrRoleNotHeld when the role is not
	// in the decoded set.
	SelectRole(ctx context.Context, sessionID, role string) error
}
