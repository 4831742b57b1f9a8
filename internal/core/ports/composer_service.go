package ports

import (
	"context"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// CreateDraftInput carries the customer fields for a new order draft.
// Token, when present, pre-fills and pins the email from the decoded claims.
type CreateDraftInput struct {
	Token        string
	CustomerName string
	Email        string
	Phone        string
	OrderDate    string
}

// UpdateDraftInput carries editable customer fields on an existing draft.
// Nil pointers leave the field untouched.
type UpdateDraftInput struct {
	CustomerName *string
	Email        *string
	Phone        *string
	OrderDate    *string
}

// ComposerService builds and validates the order submission payload before
// delegating to the backend.
type ComposerService interface {
	CreateDraft(ctx context.Context, input CreateDraftInput) (*domain.OrderDraft, error)
	Draft(ctx context.Context, id string) (*domain.OrderDraft, error)
	UpdateDraft(ctx context.Context, id string, input UpdateDraftInput) (*domain.OrderDraft, error)
	// ToggleItem adds or removes one menu item id from the draft's selection.
	ToggleItem(ctx context.Context, id string, menuItemID int64) (*domain.OrderDraft, error)
	// Total computes the draft total against the current catalog. Selected ids
	// missing from the catalog contribute 0.
	Total(ctx context.Context, id string) (float64, error)
	// Pay runs the simulated payment step; its confirmation gates Submit.
	Pay(ctx context.Context, id string, card CardDetails) (*domain.OrderDraft, error)
	// Submit validates the draft, posts the order to the backend, destroys the
	// draft on success and fires the confirmation email asynchronously. The
	// backend's error message is surfaced verbatim on rejection; no retry.
	// Token may be empty for guest checkouts.
	Submit(ctx context.Context, id, token string) (*domain.Order, error)
}
