package domain

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Claims is the identity extracted from a decoded bearer token.
// The token itself is opaque to this service: the backend signs it and owns
// verification; we only read the claims we need for gating.
type Claims struct {
	SubjectID string    `json:"subjectId"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"` // zero means non-expiring
}

// Expired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Session is the single source of truth for "who is logged in and with what
// roles". Claims is non-nil iff the token is present, decodable, and unexpired.
// The zero value is the anonymous session.
type Session struct {
	ID           string  `json:"id,omitempty"`
	Token        string  `json:"-"`
	Claims       *Claims `json:"claims,omitempty"`
	SelectedRole string  `json:"selectedRole,omitempty"`
}

// Anonymous is the session used for unauthenticated callers.
var Anonymous = Session{}

func (s Session) IsAuthenticated() bool {
	return s.Claims != nil
}

// Roles returns the normalized role set, empty for anonymous sessions.
func (s Session) Roles() []string {
	if s.Claims == nil {
		return nil
	}
	return s.Claims.Roles
}

func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// MultiRole reports whether the principal holds more than one role, in which
// case the UI needs an explicit role selection before landing.
func (s Session) MultiRole() bool {
	return len(s.Roles()) > 1
}
