package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// RoleHandler proxies the role resource: the list feeds the signup and
// user-management forms, creation is an admin action.
type RoleHandler struct {
	roles ports.RoleGateway
}

func NewRoleHandler(roles ports.RoleGateway) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List handles GET /v1/roles.
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Create handles POST /v1/roles.
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.Create(c.Request().Context(), middleware.SessionFrom(c).Token, domain.Role{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}
