package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// CustomerHandler proxies the customer resource.
type CustomerHandler struct {
	customers ports.CustomerGateway
}

func NewCustomerHandler(customers ports.CustomerGateway) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List handles GET /v1/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Create handles POST /v1/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.Request().Context(), domain.Customer{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// Update handles PUT /v1/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customers.Update(c.Request().Context(), middleware.SessionFrom(c).Token, id, domain.Customer{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /v1/customers/:id.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.customers.Delete(c.Request().Context(), middleware.SessionFrom(c).Token, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
