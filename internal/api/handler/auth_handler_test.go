package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

type fakeSessionService struct {
	loginFn      func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	currentFn    func(ctx context.Context, sessionID string) (domain.Session, error)
	logoutFn     func(ctx context.Context, sessionID string) error
	selectRoleFn func(ctx context.Context, sessionID, role string) error
}

func (f *fakeSessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeSessionService) Logout(ctx context.Context, sessionID string) error {
	return f.logoutFn(ctx, sessionID)
}

func (f *fakeSessionService) Current(ctx context.Context, sessionID string) (domain.Session, error) {
	return f.currentFn(ctx, sessionID)
}

func (f *fakeSessionService) SessionFromToken(token string) domain.Session {
	return domain.Anonymous
}

func (f *fakeSessionService) SelectRole(ctx context.Context, sessionID, role string) error {
	return f.selectRoleFn(ctx, sessionID, role)
}

func adminSession(id string) domain.Session {
	return domain.Session{
		ID:     id,
		Token:  "token123",
		Claims: &domain.Claims{SubjectID: "1", Email: "alice@example.com", Roles: []string{domain.RoleAdmin}},
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &fakeSessionService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{SessionID: "sess-1", Token: "token123", Roles: []string{domain.RoleAdmin}}, nil
		},
		currentFn: func(ctx context.Context, sessionID string) (domain.Session, error) {
			return adminSession(sessionID), nil
		},
	}
	handler := NewAuthHandler(stub, service.NewRouteResolver())

	body := strings.NewReader(`{"email":"alice@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["sessionId"] != "sess-1" || resp["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["landing"] != "/admin" {
		t.Fatalf("expected admin landing, got %v", resp["landing"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &fakeSessionService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, service.NewRouteResolver())

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &fakeSessionService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, service.NewRouteResolver())

	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Session_Anonymous(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&fakeSessionService{}, service.NewRouteResolver())

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != false {
		t.Fatalf("expected anonymous session, got %+v", resp)
	}
	if resp["landing"] != "/login" {
		t.Fatalf("expected /login landing, got %v", resp["landing"])
	}
}

func TestAuthHandler_SelectRole_UpdatesLanding(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	selected := ""
	stub := &fakeSessionService{
		selectRoleFn: func(ctx context.Context, sessionID, role string) error {
			if sessionID != "sess-1" {
				t.Fatalf("unexpected session id %q", sessionID)
			}
			selected = role
			return nil
		},
		currentFn: func(ctx context.Context, sessionID string) (domain.Session, error) {
			sess := domain.Session{
				ID:     sessionID,
				Token:  "token123",
				Claims: &domain.Claims{Roles: []string{domain.RoleAdmin, domain.RoleUser}},
			}
			sess.SelectedRole = selected
			return sess, nil
		},
	}
	handler := NewAuthHandler(stub, service.NewRouteResolver())

	body := strings.NewReader(`{"role":"User"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session/role", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Session-Id", "sess-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.SelectRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["selectedRole"] != domain.RoleUser {
		t.Fatalf("expected selected role User, got %v", resp["selectedRole"])
	}
	if resp["landing"] != "/orders" {
		t.Fatalf("expected /orders landing, got %v", resp["landing"])
	}
	if resp["showAdminNav"] != false {
		t.Fatalf("admin nav must follow the selected role, got %+v", resp)
	}
}

func TestAuthHandler_SelectRole_WithoutSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAuthHandler(&fakeSessionService{}, service.NewRouteResolver())

	body := strings.NewReader(`{"role":"Admin"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session/role", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.SelectRole(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	loggedOut := ""
	stub := &fakeSessionService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(stub, service.NewRouteResolver())

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("X-Session-Id", "sess-9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if loggedOut != "sess-9" {
		t.Fatalf("expected logout of sess-9, got %q", loggedOut)
	}
}
