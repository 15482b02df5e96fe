package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

type fixedSource struct {
	sess *domain.Session
}

func (f fixedSource) Current() (domain.Session, bool) {
	if f.sess == nil {
		return domain.Session{}, false
	}
	return *f.sess, true
}

func sessionFor(role domain.Role) *domain.Session {
	return &domain.Session{
		Identity: domain.Identity{UserID: "u1", DisplayName: "Ana", Role: role},
		Token:    "tok",
	}
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireSession_Allows(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/admin")

	called := false
	mw := RequireSession(fixedSource{sessionFor(domain.RoleAdmin)}, domain.Require(domain.RoleAdmin))
	handler := mw(func(c echo.Context) error {
		called = true
		sess, ok := SessionFrom(c)
		if !ok || sess.UserID != "u1" {
			t.Errorf("session not placed in context: %+v", sess)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_RedirectsWithoutSession(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/tasks/t1?tab=comments")

	mw := RequireSession(fixedSource{}, domain.AnyRole)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?next=%2Ftasks%2Ft1%3Ftab%3Dcomments" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRequireSession_PostRedirectDropsNext(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/tasks/t1/status")

	handler := RequireSession(fixedSource{}, domain.AnyRole)(func(c echo.Context) error { return nil })
	_ = handler(c)

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected bare login redirect, got %q", loc)
	}
}

func TestRequireSession_ForbidsWrongRole(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/admin")

	mw := RequireSession(fixedSource{sessionFor(domain.RoleEmployee)}, domain.Require(domain.RoleAdmin))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/login")
	handler := RedirectIfAuthenticated(fixedSource{sessionFor(domain.RoleEmployee)})(func(c echo.Context) error {
		t.Fatalf("logged-in user must not see the login page")
		return nil
	})
	_ = handler(c)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != domain.PathEmployee {
		t.Fatalf("expected redirect to %s, got %d %q", domain.PathEmployee, rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	c, rec = newContext(http.MethodGet, "/login")
	handler = RedirectIfAuthenticated(fixedSource{})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous user must reach the page, got %d", rec.Code)
	}
}
