package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// ComposerOptions tunes draft validation.
type ComposerOptions struct {
	// RejectZeroTotal fails validation when the selected ids resolve to no
	// catalog item at all (stale selection). Off by default: a zero-total
	// submission is otherwise accepted.
	RejectZeroTotal bool
}

// ComposerService owns in-progress order drafts: customer info, the selected
// menu item set, the computed total and the submission handshake with the
// backend.
type ComposerService struct {
	drafts   ports.DraftStore
	menu     ports.MenuItemGateway
	orders   ports.OrderGateway
	payment  ports.PaymentProcessor
	mailer   ports.EmailSender
	sessions ports.SessionService
	opts     ComposerOptions
	logger   zerolog.Logger
}

func NewComposerService(
	drafts ports.DraftStore,
	menu ports.MenuItemGateway,
	orders ports.OrderGateway,
	payment ports.PaymentProcessor,
	mailer ports.EmailSender,
	sessions ports.SessionService,
	opts ComposerOptions,
	logger zerolog.Logger,
) *ComposerService {
	return &ComposerService{
		drafts:   drafts,
		menu:     menu,
		orders:   orders,
		payment:  payment,
		mailer:   mailer,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
	}
}

// CreateDraft opens a new draft. For an authenticated caller the email is
// pre-filled from the token claims and pinned: it stays a required field for
// the rest of the draft's life.
func (s *ComposerService) CreateDraft(ctx context.Context, input ports.CreateDraftInput) (*domain.OrderDraft, error) {
	draft := domain.OrderDraft{
		ID:           uuid.NewString(),
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		OrderDate:    input.OrderDate,
		CreatedAt:    time.Now().UTC(),
	}

	if sess := s.sessions.SessionFromToken(input.Token); sess.IsAuthenticated() {
		draft.RequireEmail = true
		if draft.Email == "" {
			draft.Email = sess.Claims.Email
		}
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info().Str("draft_id", draft.ID).Bool("authenticated", draft.RequireEmail).Msg("order draft created")
	return &draft, nil
}

func (s *ComposerService) Draft(ctx context.Context, id string) (*domain.OrderDraft, error) {
	return s.drafts.Get(ctx, id)
}

// UpdateDraft patches the editable customer fields. The email of a pinned
// draft cannot be cleared, matching the disabled email input in the
// authenticated ordering flow.
func (s *ComposerService) UpdateDraft(ctx context.Context, id string, input ports.UpdateDraftInput) (*domain.OrderDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		draft.CustomerName = *input.CustomerName
	}
	if input.Phone != nil {
		draft.Phone = *input.Phone
	}
	if input.OrderDate != nil {
		draft.OrderDate = *input.OrderDate
	}
	if input.Email != nil && !(draft.RequireEmail && *input.Email == "") {
		draft.Email = *input.Email
	}

	if err := s.drafts.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ToggleItem flips one menu item id in the draft's selection set.
func (s *ComposerService) ToggleItem(ctx context.Context, id string, menuItemID int64) (*domain.OrderDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.ToggleItem(menuItemID)

	if err := s.drafts.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Total computes the running total against the live catalog.
func (s *ComposerService) Total(ctx context.Context, id string) (float64, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	catalog, err := s.menu.List(ctx)
	if err != nil {
		return 0, err
	}
	return draft.Total(catalog), nil
}

// Pay runs the simulated card-payment step and records its confirmation on
// the draft. Submission is blocked until this succeeds.
func (s *ComposerService) Pay(ctx context.Context, id string, card ports.CardDetails) (*domain.OrderDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}

	confirm, err := s.payment.Charge(ctx, card, draft.Total(catalog))
	if err != nil {
		return nil, err
	}

	draft.PaymentConfirm = confirm
	if err := s.drafts.Save(ctx, *draft); err != nil {
		return nil, err
	}
	s.logger.Info().Str("draft_id", draft.ID).Str("confirmation", confirm).Msg("payment confirmed")
	return draft, nil
}

// Submit validates the draft and posts it to the backend. On success the
// draft is destroyed and the confirmation email is dispatched fire-and-forget.
// On rejection the backend's message is surfaced verbatim and the draft is
// left untouched; nothing is retried.
func (s *ComposerService) Submit(ctx context.Context, id, token string) (*domain.Order, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !draft.Paid() {
		return nil, domain.ErrPaymentRequired
	}

	catalog, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(*draft, catalog); err != nil {
		return nil, err
	}

	order := domain.Order{
		CustomerName:   draft.CustomerName,
		Phone:          draft.Phone,
		Email:          draft.Email,
		OrderDate:      draft.OrderDate,
		OrderMenuItems: make([]domain.OrderMenuItem, 0, len(draft.SelectedMenuItemIDs)),
	}
	for _, itemID := range draft.SelectedMenuItemIDs {
		// OrderID 0 is a placeholder the backend overwrites.
		order.OrderMenuItems = append(order.OrderMenuItems, domain.OrderMenuItem{OrderID: 0, MenuItemID: itemID})
	}

	created, err := s.orders.Create(ctx, token, order)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		s.logger.Warn().Err(err).Str("draft_id", draft.ID).Msg("submitted draft could not be deleted")
	}

	s.sendConfirmation(ctx, *draft, catalog)

	s.logger.Info().Str("draft_id", draft.ID).Int64("order_id", created.ID).Msg("order submitted")
	return created, nil
}

// Validate checks the draft against the required-field rules. It returns a
// *domain.ValidationError listing every failing field, or nil.
func (s *ComposerService) Validate(draft domain.OrderDraft, catalog []domain.MenuItem) error {
	var fields []domain.FieldError

	if draft.CustomerName == "" {
		fields = append(fields, domain.FieldError{Field: "customerName", Message: "is required"})
	}
	if draft.Phone == "" {
		fields = append(fields, domain.FieldError{Field: "phone", Message: "is required"})
	}
	if draft.OrderDate == "" {
		fields = append(fields, domain.FieldError{Field: "orderDate", Message: "is required"})
	}
	if draft.RequireEmail && draft.Email == "" {
		fields = append(fields, domain.FieldError{Field: "email", Message: "is required"})
	}
	if len(draft.SelectedMenuItemIDs) == 0 {
		fields = append(fields, domain.FieldError{Field: "selectedMenuItemIds", Message: "must contain at least one menu item"})
	} else if s.opts.RejectZeroTotal && resolvedCount(draft, catalog) == 0 {
		fields = append(fields, domain.FieldError{Field: "selectedMenuItemIds", Message: "match no current menu items"})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// sendConfirmation builds the email summary from the resolvable selections
// and hands it to the mailer. Delivery failure is logged, never surfaced.
func (s *ComposerService) sendConfirmation(ctx context.Context, draft domain.OrderDraft, catalog []domain.MenuItem) {
	if draft.Email == "" {
		return
	}

	byID := make(map[int64]domain.MenuItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	email := ports.OrderEmail{
		Email:        draft.Email,
		CustomerName: draft.CustomerName,
		Phone:        draft.Phone,
		Total:        draft.Total(catalog),
	}
	for _, itemID := range draft.SelectedMenuItemIDs {
		if item, ok := byID[itemID]; ok {
			email.Items = append(email.Items, ports.OrderEmailItem{
				Name:     item.Name,
				Price:    item.Price,
				ImageURL: item.ImageURL,
			})
		}
	}

	if err := s.mailer.SendOrderConfirmation(ctx, email); err != nil {
		s.logger.Error().Err(err).Str("draft_id", draft.ID).Msg("order confirmation email failed")
	}
}

func resolvedCount(draft domain.OrderDraft, catalog []domain.MenuItem) int {
	known := make(map[int64]struct{}, len(catalog))
	for _, item := range catalog {
		known[item.ID] = struct{}{}
	}
	var n int
	for _, id := range draft.SelectedMenuItemIDs {
		if _, ok := known[id]; ok {
			n++
		}
	}
	return n
}
