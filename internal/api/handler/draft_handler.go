package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/api/metrics"
	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// DraftHandler drives the order composer: create a draft, toggle selections,
// pay, submit.
type DraftHandler struct {
	composer ports.ComposerService
}

func NewDraftHandler(composer ports.ComposerService) *DraftHandler {
	return &DraftHandler{composer: composer}
}

// Create handles POST /v1/drafts. Customer fields are optional here; they
// are enforced at submission, matching a form the customer fills in as they
// go. An authenticated caller gets the email pinned from their token.
//
// @Summary      Open a new order draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        body  body      createDraftRequest  true  "Initial customer fields"
// @Success      201   {object}  domain.OrderDraft
// @Failure      400   {object}  map[string]string
// @Router       /v1/drafts [post]
func (h *DraftHandler) Create(c echo.Context) error {
	var req createDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	draft, err := h.composer.CreateDraft(c.Request().Context(), ports.CreateDraftInput{
		Token:        middleware.SessionFrom(c).Token,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		OrderDate:    req.OrderDate,
	})
	if err != nil {
		return err
	}
	metrics.DraftsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, draft)
}

// Get handles GET /v1/drafts/:id.
func (h *DraftHandler) Get(c echo.Context) error {
	draft, err := h.composer.Draft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// Update handles PUT /v1/drafts/:id. Absent fields are left untouched.
func (h *DraftHandler) Update(c echo.Context) error {
	var req updateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	draft, err := h.composer.UpdateDraft(c.Request().Context(), c.Param("id"), ports.UpdateDraftInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		OrderDate:    req.OrderDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// ToggleItem handles POST /v1/drafts/:id/items/:itemID. Selecting an already
// selected item deselects it.
func (h *DraftHandler) ToggleItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "itemID must be numeric")
	}

	draft, err := h.composer.ToggleItem(c.Request().Context(), c.Param("id"), itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// Total handles GET /v1/drafts/:id/total.
func (h *DraftHandler) Total(c echo.Context) error {
	total, err := h.composer.Total(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draftTotalResponse{Total: total})
}

// Pay handles POST /v1/drafts/:id/payment: the simulated card step whose
// confirmation gates submission.
//
// @Summary      Run the payment step for a draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Draft ID"
// @Param        body  body      paymentRequest  true  "Card details"
// @Success      200   {object}  paymentResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/drafts/{id}/payment [post]
func (h *DraftHandler) Pay(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	draft, err := h.composer.Pay(c.Request().Context(), c.Param("id"), ports.CardDetails{
		Number: req.Number,
		Expiry: req.Expiry,
		CVV:    req.CVV,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentResponse{PaymentConfirm: draft.PaymentConfirm})
}

// Submit handles POST /v1/drafts/:id/submit.
//
// @Summary      Submit a draft as an order
// @Tags         drafts
// @Produce      json
// @Param        id  path      string  true  "Draft ID"
// @Success      201  {object}  domain.Order
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c echo.Context) error {
	order, err := h.composer.Submit(c.Request().Context(), c.Param("id"), middleware.SessionFrom(c).Token)
	if err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues(submitOutcome(err)).Inc()
		return err
	}
	metrics.OrdersSubmittedTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, order)
}

func submitOutcome(err error) string {
	var validationErr *domain.ValidationError
	var backendErr *domain.BackendError
	switch {
	case errors.As(err, &validationErr):
		return "validation_failed"
	case errors.Is(err, domain.ErrPaymentRequired):
		return "payment_missing"
	case errors.As(err, &backendErr):
		return "rejected"
	default:
		return "error"
	}
}
