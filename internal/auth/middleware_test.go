package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

func guardApp(guard *Guard, extract func(*fiber.Ctx) (string, bool)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
		},
	})
	app.Get("/protected", guard.Handle, func(c *fiber.Ctx) error {
		id, ok := extract(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"id": id})
	})
	return app
}

func TestGuardRejectsMissingAndMalformedHeaders(t *testing.T) {
	guard := NewAdminGuard(NewTokenManager("admin-secret", time.Hour))
	app := guardApp(guard, AdminIDFromContext)

	cases := map[string]string{
		"missing":   "",
		"no scheme": "sometoken",
		"basic":     "Basic abc123",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request error: %v", name, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, resp.StatusCode)
		}
	}
}

func TestGuardRejectsCrossScopeToken(t *testing.T) {
	adminTokens := NewTokenManager("admin-secret", time.Hour)
	userTokens := NewTokenManager("user-secret", time.Hour)
	app := guardApp(NewUserGuard(userTokens), UserIDFromContext)

	adminToken, _, err := adminTokens.Issue("admin-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for cross-scope token, got %d", resp.StatusCode)
	}
}

func TestGuardInjectsPrincipalID(t *testing.T) {
	tokens := NewTokenManager("admin-secret", time.Hour)
	app := guardApp(NewAdminGuard(tokens), AdminIDFromContext)

	token, _, err := tokens.Issue("admin-42")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
