package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

type stubDraftStore struct {
	drafts map[string]domain.OrderDraft
}

func newStubDraftStore() *stubDraftStore {
	return &stubDraftStore{drafts: make(map[string]domain.OrderDraft)}
}

func (s *stubDraftStore) Save(_ context.Context, draft domain.OrderDraft) error {
	s.drafts[draft.ID] = draft
	return nil
}

func (s *stubDraftStore) Get(_ context.Context, id string) (*domain.OrderDraft, error) {
	draft, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	copy := draft
	return &copy, nil
}

func (s *stubDraftStore) Delete(_ context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

type stubMenuGateway struct {
	catalog []domain.MenuItem
	err     error
}

func (g *stubMenuGateway) List(_ context.Context) ([]domain.MenuItem, error) {
	return g.catalog, g.err
}

func (g *stubMenuGateway) Get(_ context.Context, id int64) (*domain.MenuItem, error) {
	for _, item := range g.catalog {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, domain.ErrMenuItemNotFound
}

func (g *stubMenuGateway) Create(_ context.Context, _ string, item domain.MenuItem) (*domain.MenuItem, error) {
	return &item, nil
}

func (g *stubMenuGateway) Update(_ context.Context, _ string, _ int64, item domain.MenuItem) (*domain.MenuItem, error) {
	return &item, nil
}

func (g *stubMenuGateway) Delete(_ context.Context, _ string, _ int64) error { return nil }

type stubOrderGateway struct {
	created   []domain.Order
	lastToken string
	err       error
}

func (g *stubOrderGateway) List(_ context.Context, _ string) ([]domain.Order, error) { return nil, nil }
func (g *stubOrderGateway) Get(_ context.Context, _ int64) (*domain.Order, error)    { return nil, nil }

func (g *stubOrderGateway) Create(_ context.Context, token string, order domain.Order) (*domain.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastToken = token
	order.ID = int64(len(g.created) + 1)
	g.created = append(g.created, order)
	return &order, nil
}

func (g *stubOrderGateway) Update(_ context.Context, _ string, _ int64, order domain.Order) (*domain.Order, error) {
	return &order, nil
}

func (g *stubOrderGateway) Delete(_ context.Context, _ string, _ int64) error { return nil }

type stubPayment struct {
	confirm string
	err     error
}

func (p *stubPayment) Charge(_ context.Context, _ ports.CardDetails, _ float64) (string, error) {
	return p.confirm, p.err
}

type stubMailer struct {
	sent []ports.OrderEmail
	err  error
}

func (m *stubMailer) SendOrderConfirmation(_ context.Context, email ports.OrderEmail) error {
	m.sent = append(m.sent, email)
	return m.err
}

type composerFixture struct {
	svc     *ComposerService
	drafts  *stubDraftStore
	menu    *stubMenuGateway
	orders  *stubOrderGateway
	payment *stubPayment
	mailer  *stubMailer
}

func newComposerFixture(opts ComposerOptions) *composerFixture {
	f := &composerFixture{
		drafts: newStubDraftStore(),
		menu: &stubMenuGateway{catalog: []domain.MenuItem{
			{ID: 1, Name: "Margherita", Price: 10},
			{ID: 2, Name: "Lemonade", Price: 5},
		}},
		orders:  &stubOrderGateway{},
		payment: &stubPayment{confirm: "PAY-1"},
		mailer:  &stubMailer{},
	}
	sessions := NewSessionService(nil, nil, zerolog.Nop())
	f.svc = NewComposerService(f.drafts, f.menu, f.orders, f.payment, f.mailer, sessions, opts, zerolog.Nop())
	return f
}

func validDraftInput() ports.CreateDraftInput {
	return ports.CreateDraftInput{
		CustomerName: "Noa Levi",
		Email:        "noa@example.com",
		Phone:        "050-1234567",
		OrderDate:    "2026-09-01",
	}
}

func TestComposer_ToggleItemIsIdempotentUnderDoubleToggle(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft, err := f.svc.CreateDraft(context.Background(), validDraftInput())
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	if _, err := f.svc.ToggleItem(context.Background(), draft.ID, 1); err != nil {
		t.Fatalf("ToggleItem: %v", err)
	}
	after, err := f.svc.ToggleItem(context.Background(), draft.ID, 1)
	if err != nil {
		t.Fatalf("ToggleItem: %v", err)
	}
	if len(after.SelectedMenuItemIDs) != 0 {
		t.Fatalf("double toggle must restore the original selection, got %v", after.SelectedMenuItemIDs)
	}
}

func TestComposer_TotalSkipsUnknownItems(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())

	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 1)
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 2)
	total, err := f.svc.Total(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 15 {
		t.Fatalf("total = %v, want 15", total)
	}

	// Swap item 2 for an id absent from the catalog: it contributes 0.
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 2)
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 3)
	total, err = f.svc.Total(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 10 {
		t.Fatalf("total = %v, want 10", total)
	}
}

func TestComposer_ValidateReportsMissingOrderDate(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft := domain.OrderDraft{
		CustomerName:        "Noa Levi",
		Phone:               "050-1234567",
		SelectedMenuItemIDs: []int64{1},
	}

	err := f.svc.Validate(draft, f.menu.catalog)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "orderDate" {
		t.Fatalf("expected a single orderDate field error, got %+v", ve.Fields)
	}
}

func TestComposer_ValidateEmailOnlyForAuthenticatedDrafts(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})

	guest := domain.OrderDraft{
		CustomerName:        "Walk In",
		Phone:               "050-0000000",
		OrderDate:           "2026-09-01",
		SelectedMenuItemIDs: []int64{1},
	}
	if err := f.svc.Validate(guest, f.menu.catalog); err != nil {
		t.Fatalf("guest draft without email must validate, got %v", err)
	}

	guest.RequireEmail = true
	err := f.svc.Validate(guest, f.menu.catalog)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "email" {
		t.Fatalf("authenticated draft without email must fail on email, got %v", err)
	}
}

func TestComposer_StaleSelectionSubmitsZeroTotalByDefault(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 7) // not in catalog

	total, err := f.svc.Total(context.Background(), draft.ID)
	if err != nil || total != 0 {
		t.Fatalf("total = %v (%v), want 0", total, err)
	}

	if _, err := f.svc.Pay(context.Background(), draft.ID, ports.CardDetails{}); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	order, err := f.svc.Submit(context.Background(), draft.ID, "")
	if err != nil {
		t.Fatalf("zero-total submission must pass by default, got %v", err)
	}
	if len(order.OrderMenuItems) != 1 || order.OrderMenuItems[0].MenuItemID != 7 {
		t.Fatalf("unexpected payload: %+v", order.OrderMenuItems)
	}
}

func TestComposer_StaleSelectionRejectedWhenConfigured(t *testing.T) {
	f := newComposerFixture(ComposerOptions{RejectZeroTotal: true})
	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 7)

	_, _ = f.svc.Pay(context.Background(), draft.ID, ports.CardDetails{})
	_, err := f.svc.Submit(context.Background(), draft.ID, "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unresolvable selection, got %v", err)
	}
}

func TestComposer_SubmitRequiresPayment(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 1)

	if _, err := f.svc.Submit(context.Background(), draft.ID, ""); !errors.Is(err, domain.ErrPaymentRequired) {
		t.Fatalf("expected ErrPaymentRequired, got %v", err)
	}
}

func TestComposer_SubmitHappyPath(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 1)
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 2)
	_, _ = f.svc.Pay(context.Background(), draft.ID, ports.CardDetails{Number: "4111111111111111", Expiry: "12/29", CVV: "123"})

	order, err := f.svc.Submit(context.Background(), draft.ID, "bearer-token")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected backend-assigned order id")
	}
	for _, omi := range order.OrderMenuItems {
		if omi.OrderID != 0 {
			t.Fatalf("orderId placeholder must be 0, got %d", omi.OrderID)
		}
	}
	if f.orders.lastToken != "bearer-token" {
		t.Fatalf("token not forwarded to the order gateway")
	}
	if _, err := f.svc.Draft(context.Background(), draft.ID); !errors.Is(err, domain.ErrDraftNotFound) {
		t.Fatalf("draft must be reset after submission, got %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].Total != 15 {
		t.Fatalf("email total = %v, want 15", f.mailer.sent[0].Total)
	}
}

func TestComposer_SubmitSurfacesBackendErrorVerbatim(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	f.orders.err = &domain.BackendError{StatusCode: 422, Message: "order date is in the past"}

	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 1)
	_, _ = f.svc.Pay(context.Background(), draft.ID, ports.CardDetails{})

	_, err := f.svc.Submit(context.Background(), draft.ID, "")
	if err == nil || err.Error() != "order date is in the past" {
		t.Fatalf("backend message must surface verbatim, got %v", err)
	}
	if _, getErr := f.svc.Draft(context.Background(), draft.ID); getErr != nil {
		t.Fatalf("failed submission must leave the draft intact, got %v", getErr)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatalf("no email on failed submission")
	}
}

func TestComposer_MailFailureDoesNotFailSubmit(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	f.mailer.err = errors.New("smtp relay down")

	draft, _ := f.svc.CreateDraft(context.Background(), validDraftInput())
	_, _ = f.svc.ToggleItem(context.Background(), draft.ID, 1)
	_, _ = f.svc.Pay(context.Background(), draft.ID, ports.CardDetails{})

	if _, err := f.svc.Submit(context.Background(), draft.ID, ""); err != nil {
		t.Fatalf("email failure must never reverse the order, got %v", err)
	}
}

func TestComposer_CreateDraftPinsEmailForAuthenticatedPrincipal(t *testing.T) {
	f := newComposerFixture(ComposerOptions{})
	token := signToken(t, jwt.MapClaims{"email": "dana@example.com", "roles": []string{"User"}})

	input := validDraftInput()
	input.Email = ""
	input.Token = token
	draft, err := f.svc.CreateDraft(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if draft.Email != "dana@example.com" {
		t.Fatalf("email not pre-filled from claims, got %q", draft.Email)
	}
	if !draft.RequireEmail {
		t.Fatalf("authenticated draft must pin the email")
	}

	empty := ""
	updated, err := f.svc.UpdateDraft(context.Background(), draft.ID, ports.UpdateDraftInput{Email: &empty})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if updated.Email != "dana@example.com" {
		t.Fatalf("pinned email must not be cleared, got %q", updated.Email)
	}
}
