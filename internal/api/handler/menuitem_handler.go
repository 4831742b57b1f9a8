package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// MenuItemHandler proxies menu item CRUD to the backend. Reads are public;
// writes require the Admin role and forward the caller's bearer token
// untouched so the backend enforces its own authorization.
type MenuItemHandler struct {
	menu ports.MenuItemGateway
}

func NewMenuItemHandler(menu ports.MenuItemGateway) *MenuItemHandler {
	return &MenuItemHandler{menu: menu}
}

// List handles GET /v1/menuitems.
func (h *MenuItemHandler) List(c echo.Context) error {
	items, err := h.menu.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/menuitems/:id.
func (h *MenuItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.menu.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/menuitems.
//
// @Summary      Create a menu item
// @Tags         menuitems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      201   {object}  domain.MenuItem
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/menuitems [post]
func (h *MenuItemHandler) Create(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.menu.Create(c.Request().Context(), middleware.SessionFrom(c).Token, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/menuitems/:id.
func (h *MenuItemHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.menu.Update(c.Request().Context(), middleware.SessionFrom(c).Token, id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/menuitems/:id.
func (h *MenuItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.menu.Delete(c.Request().Context(), middleware.SessionFrom(c).Token, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the numeric :id path parameter shared by the proxy handlers.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}
	return id, nil
}
