package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/service"
)

func newVerifier() *service.TokenService {
	return service.NewTokenService("secret", time.Hour)
}

func issueToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := newVerifier().Issue(&domain.Account{
		ID:       "acc-1",
		Username: "alice",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestAuth_ValidBearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, domain.RoleUser))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newVerifier())(func(c echo.Context) error {
		called = true
		identity, ok := c.Get(IdentityKey).(domain.Identity)
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.ID != "acc-1" || identity.Username != "alice" || identity.Role != domain.RoleUser {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		if c.Get(RoleKey) != "USER" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_ValidCookieToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueToken(t, domain.RoleAdmin)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newVerifier())(func(c echo.Context) error {
		if c.Get(RoleKey) != "ADMIN" {
			t.Fatalf("role not set from cookie token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_HeaderTakesPrecedenceOverCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, domain.RoleUser))
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueToken(t, domain.RoleAdmin)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newVerifier())(func(c echo.Context) error {
		if c.Get(RoleKey) != "USER" {
			t.Fatalf("expected header token to win, got role %v", c.Get(RoleKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newVerifier())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newVerifier())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_InvalidSignature(t *testing.T) {
	e := echo.New()
	foreign, err := service.NewTokenService("other-secret", time.Hour).Issue(&domain.Account{
		ID:       "acc-1",
		Username: "alice",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+foreign)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newVerifier())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
