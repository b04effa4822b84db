package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

var testPolicy = Policy{
	"vehicles:create": {domain.RoleAdmin, domain.RoleUser},
	"vehicles:list":   {domain.RoleAdmin},
}

func policyContext(t *testing.T, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestPolicy_AllowsListedRole(t *testing.T) {
	c, rec := policyContext(t, domain.RoleUser)

	called := false
	handler := testPolicy.Require("vehicles:create")(func(c echo.Context) error {
		called = true
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

func TestPolicy_ForbidsUnlistedRole(t *testing.T) {
	c, rec := policyContext(t, domain.RoleUser)

	handler := testPolicy.Require("vehicles:list")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPolicy_UnknownOperationDeniesEveryone(t *testing.T) {
	c, rec := policyContext(t, domain.RoleAdmin)

	handler := testPolicy.Require("vehicles:launch")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPolicy_MissingRoleForbidden(t *testing.T) {
	c, rec := policyContext(t, "")

	handler := testPolicy.Require("vehicles:create")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
