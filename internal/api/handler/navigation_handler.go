package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

// NavigationHandler exposes the route-gating decisions so the browser can ask
// "may I go here?" before rendering anything.
type NavigationHandler struct {
	resolver *service.RouteResolver
}

func NewNavigationHandler(resolver *service.RouteResolver) *NavigationHandler {
	return &NavigationHandler{resolver: resolver}
}

type navigationResponse struct {
	Render       service.ViewID `json:"render,omitempty"`
	RedirectTo   string         `json:"redirectTo,omitempty"`
	ShowAdminNav bool           `json:"showAdminNav"`
}

// Resolve handles GET /v1/navigation?path=/admin.
//
// @Summary      Resolve a navigation target against the current session
// @Tags         navigation
// @Produce      json
// @Param        path  query     string  true  "Navigation path, e.g. /orders"
// @Success      200   {object}  navigationResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Resolve(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	sess := middleware.SessionFrom(c)
	decision := h.resolver.Resolve(path, sess)

	return c.JSON(http.StatusOK, navigationResponse{
		Render:       decision.Render,
		RedirectTo:   decision.RedirectTo,
		ShowAdminNav: h.resolver.ShowAdminNav(sess),
	})
}
