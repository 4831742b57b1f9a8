package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// sessionKey is the echo context key the resolved session lives under.
const sessionKey = "session"

// HeaderSessionID carries the persisted session ID issued at login. It wins
// over a bare bearer token because only the persisted record knows the
// selected role.
const HeaderSessionID = "X-Session-Id"

// Session resolves the caller's identity and injects it into the context.
// Missing, undecodable or expired credentials resolve to the anonymous
// session rather than an error; routes that need a principal say so via
// Guard. The session store is consulted on every request, so login, role
// selection and logout are visible immediately without any reload handshake.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := domain.Anonymous

			if id := c.Request().Header.Get(HeaderSessionID); id != "" {
				if current, err := sessions.Current(c.Request().Context(), id); err == nil {
					sess = current
				}
			} else if token := bearerToken(c); token != "" {
				sess = sessions.SessionFromToken(token)
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by the Session middleware, or the
// anonymous session when the middleware did not run.
func SessionFrom(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionKey).(domain.Session)
	return sess
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
