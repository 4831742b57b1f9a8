package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// msRoleClaim is the role-claim URI emitted by ASP.NET identity backends.
// Plain "roles"/"role" claims are checked first.
const msRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// SessionService implements login, logout, role selection and session
// rehydration on top of a durable session store.
type SessionService struct {
	auth   ports.AuthGateway
	store  ports.SessionStore
	logger zerolog.Logger
}

func NewSessionService(auth ports.AuthGateway, store ports.SessionStore, logger zerolog.Logger) *SessionService {
	return &SessionService{auth: auth, store: store, logger: logger}
}

// Login delegates to the backend's login endpoint, decodes the returned token
// and persists the session record. A token whose claims cannot be decoded
// still logs in: the session simply reads as anonymous afterwards.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	var roles []string
	if claims := decodeClaims(token); claims != nil {
		roles = claims.Roles
	} else {
		s.logger.Warn().Msg("login token could not be decoded, session is anonymous")
	}

	rec := ports.SessionRecord{
		ID:        uuid.NewString(),
		Token:     token,
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info().Str("session_id", rec.ID).Strs("roles", roles).Msg("session created")

	return &ports.LoginResult{
		SessionID: rec.ID,
		Token:     token,
		Roles:     roles,
		MultiRole: len(roles) > 1,
	}, nil
}

// Logout destroys the session record. Deleting an unknown session is not an
// error; the caller ends up anonymous either way.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

// Current rehydrates the session from the store and revalidates the token.
// Unknown sessions and expired or undecodable tokens read as anonymous.
func (s *SessionService) Current(ctx context.Context, sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return domain.Anonymous, nil
	}

	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return domain.Anonymous, nil
		}
		return domain.Anonymous, err
	}

	sess := s.SessionFromToken(rec.Token)
	if !sess.IsAuthenticated() {
		return domain.Anonymous, nil
	}

	sess.ID = rec.ID
	if sess.HasRole(rec.SelectedRole) {
		sess.SelectedRole = rec.SelectedRole
	}
	return sess, nil
}

// SessionFromToken derives a session directly from a bearer token. Decode
// failures and expired tokens yield the anonymous session, never an error.
func (s *SessionService) SessionFromToken(token string) domain.Session {
	if token == "" {
		return domain.Anonymous
	}
	claims := decodeClaims(token)
	if claims == nil || claims.Expired(time.Now()) {
		return domain.Anonymous
	}
	return domain.Session{Token: token, Claims: claims}
}

// SelectRole persists the active role for a multi-role principal. The role
// must be one the decoded token actually grants.
func (s *SessionService) SelectRole(ctx context.Context, sessionID, role string) error {
	rec, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	sess := s.SessionFromToken(rec.Token)
	if !sess.HasRole(role) {
		return domain.ErrRoleNotHeld
	}

	rec.SelectedRole = role
	if err := s.store.Save(ctx, *rec); err != nil {
		return err
	}

	s.logger.Info().Str("session_id", sessionID).Str("role", role).Msg("active role selected")
	return nil
}

// decodeClaims parses the token without verifying its signature; the backend
// issued and owns it, this service only reads identity and role claims.
// Returns nil on any decode failure.
func decodeClaims(token string) *domain.Claims {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return nil
	}

	claims := &domain.Claims{Roles: extractRoles(mapClaims)}

	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.SubjectID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims
}

// extractRoles reads the role claim, accepting either a single string or an
// array of strings under "roles", "role" or the ASP.NET role-claim URI, and
// normalizes it to a duplicate-free set.
func extractRoles(claims jwt.MapClaims) []string {
	var raw any
	for _, key := range []string{"roles", "role", msRoleClaim} {
		if v, ok := claims[key]; ok {
			raw = v
			break
		}
	}

	var roles []string
	switch v := raw.(type) {
	case string:
		roles = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	seen := make(map[string]struct{}, len(roles))
	out := roles[:0]
	for _, r := range roles {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
