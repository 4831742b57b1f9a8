package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

// AuthHandler handles HTTP requests for login, logout and session state.
type AuthHandler struct {
	sessions ports.SessionService
	resolver *service.RouteResolver
}

func NewAuthHandler(sessions ports.SessionService, resolver *service.RouteResolver) *AuthHandler {
	return &AuthHandler{sessions: sessions, resolver: resolver}
}

// Login handles POST /v1/login.
//
// @Summary      Authenticate and open a session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	sess, err := h.sessions.Current(c.Request().Context(), result.SessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		SessionID: result.SessionID,
		Token:     result.Token,
		Roles:     result.Roles,
		MultiRole: result.MultiRole,
		Landing:   h.resolver.DefaultLanding(sess),
	})
}

// Logout handles POST /v1/logout. Destroys the session named by the
// X-Session-Id header; logging out an unknown session is a no-op.
//
// @Summary      Close the current session
// @Tags         session
// @Success      204  "session destroyed"
// @Router       /v1/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id := c.Request().Header.Get(middleware.HeaderSessionID)
	if id != "" {
		if err := h.sessions.Logout(c.Request().Context(), id); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Session handles GET /v1/session. Always 200: an unauthenticated caller
// reads back the anonymous shape, never an error.
//
// @Summary      Describe the current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	resp := sessionResponse{
		Authenticated: sess.IsAuthenticated(),
		Roles:         sess.Roles(),
		SelectedRole:  sess.SelectedRole,
		MultiRole:     sess.MultiRole(),
		ShowAdminNav:  h.resolver.ShowAdminNav(sess),
		Landing:       h.resolver.DefaultLanding(sess),
	}
	if sess.Claims != nil {
		resp.Email = sess.Claims.Email
	}
	return c.JSON(http.StatusOK, resp)
}

// SelectRole handles POST /v1/session/role.
//
// @Summary      Pick the active role for a multi-role session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      selectRoleRequest  true  "Role to activate"
// @Success      200   {object}  sessionResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/session/role [post]
func (h *AuthHandler) SelectRole(c echo.Context) error {
	var req selectRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Request().Header.Get(middleware.HeaderSessionID)
	if id == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if err := h.sessions.SelectRole(c.Request().Context(), id, req.Role); err != nil {
		return err
	}

	sess, err := h.sessions.Current(c.Request().Context(), id)
	if err != nil {
		return err
	}
	resp := sessionResponse{
		Authenticated: sess.IsAuthenticated(),
		Roles:         sess.Roles(),
		SelectedRole:  sess.SelectedRole,
		MultiRole:     sess.MultiRole(),
		ShowAdminNav:  h.resolver.ShowAdminNav(sess),
		Landing:       h.resolver.DefaultLanding(sess),
	}
	if sess.Claims != nil {
		resp.Email = sess.Claims.Email
	}
	return c.JSON(http.StatusOK, resp)
}
