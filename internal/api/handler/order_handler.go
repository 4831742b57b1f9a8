package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

// OrderHandler proxies order CRUD to the backend and serves the joined
// orders view.
type OrderHandler struct {
	orders   ports.OrderGateway
	menu     ports.MenuItemGateway
	resolver *service.RouteResolver
}

func NewOrderHandler(orders ports.OrderGateway, menu ports.MenuItemGateway, resolver *service.RouteResolver) *OrderHandler {
	return &OrderHandler{orders: orders, menu: menu, resolver: resolver}
}

// List handles GET /v1/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context(), middleware.SessionFrom(c).Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /v1/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Create handles POST /v1/orders: the direct submission path that bypasses
// the draft composer. The backend's validation verdict is surfaced verbatim.
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), middleware.SessionFrom(c).Token, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Update handles PUT /v1/orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.Update(c.Request().Context(), middleware.SessionFrom(c).Token, id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /v1/orders/:id.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.Request().Context(), middleware.SessionFrom(c).Token, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// OrdersView handles GET /v1/views/orders. The orders screen needs both the
// order list and the menu catalog to resolve item names and prices, so both
// are fetched in parallel and the view fails as a unit if either fetch does.
//
// @Summary      Joined data for the orders screen
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersViewResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/views/orders [get]
func (h *OrderHandler) OrdersView(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)

	var (
		wg        sync.WaitGroup
		orders    []domain.Order
		items     []domain.MenuItem
		ordersErr error
		itemsErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, ordersErr = h.orders.List(ctx, sess.Token)
	}()
	go func() {
		defer wg.Done()
		items, itemsErr = h.menu.List(ctx)
	}()
	wg.Wait()

	if ordersErr != nil {
		return ordersErr
	}
	if itemsErr != nil {
		return itemsErr
	}

	return c.JSON(http.StatusOK, ordersViewResponse{
		Orders:           orders,
		MenuItems:        items,
		ShowAdminActions: h.resolver.ShowAdminNav(sess),
	})
}
