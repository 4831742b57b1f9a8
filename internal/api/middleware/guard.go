package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
)

// Guard enforces role-gated access. The decision derives from the full role
// set of the session, never from the selected role: selection is a display
// preference, not a privilege boundary.
func Guard(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if !sess.IsAuthenticated() {
				metrics.GuardDenialsTotal.WithLabelValues(c.Path()).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range sess.Roles() {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			metrics.GuardDenialsTotal.WithLabelValues(c.Path()).Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
