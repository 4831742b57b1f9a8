package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/service"
)

func resolveNavigation(t *testing.T, path string, sess domain.Session) navigationResponse {
	t.Helper()
	e := echo.New()
	handler := NewNavigationHandler(service.NewRouteResolver())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation?path="+url.QueryEscape(path), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", sess)

	if err := handler.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp navigationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestNavigationHandler_AdminGate(t *testing.T) {
	anon := resolveNavigation(t, "/admin", domain.Anonymous)
	if anon.RedirectTo != "/login" {
		t.Fatalf("anonymous /admin must redirect to /login, got %+v", anon)
	}

	admin := resolveNavigation(t, "/admin", adminSession("sess-1"))
	if admin.Render != service.ViewAdmin {
		t.Fatalf("admin /admin must render, got %+v", admin)
	}
	if !admin.ShowAdminNav {
		t.Fatalf("sole-role admin should see the admin nav")
	}
}

func TestNavigationHandler_LoginWhileAuthenticated(t *testing.T) {
	resp := resolveNavigation(t, "/login", adminSession("sess-1"))
	if resp.RedirectTo != "/" {
		t.Fatalf("authenticated /login must redirect home, got %+v", resp)
	}
}

func TestNavigationHandler_UnknownPath(t *testing.T) {
	resp := resolveNavigation(t, "/does-not-exist", domain.Anonymous)
	if resp.Render != service.ViewNotFound {
		t.Fatalf("unknown path must render not-found, got %+v", resp)
	}
}

func TestNavigationHandler_MissingPath(t *testing.T) {
	e := echo.New()
	handler := NewNavigationHandler(service.NewRouteResolver())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Resolve(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
