package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/course-marketplace/internal/config"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

func newTestAuthService() *AuthService {
	cfg := config.AuthConfig{
		AdminJWTSecret: "admin-secret",
		UserJWTSecret:  "user-secret",
		TokenTTLHours:  24,
		BcryptCost:     bcrypt.MinCost,
	}
	return NewAuthService(cfg, AuthDependencies{
		AdminRepo: newFakeAdminRepo(),
		UserRepo:  newFakeUserRepo(),
	})
}

func validSignup() SignupInput {
	return SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@x.com",
		Password:  "longenough",
	}
}

func domainErrOf(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return de
}

func TestSignupValidationRules(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	cases := map[string]SignupInput{
		"short first name": {FirstName: "A", LastName: "Lovelace", Email: "a@x.com", Password: "longenough"},
		"short last name":  {FirstName: "Ada", LastName: "L", Email: "a@x.com", Password: "longenough"},
		"bad email":        {FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email", Password: "longenough"},
		"short password":   {FirstName: "Ada", LastName: "Lovelace", Email: "a@x.com", Password: "short"},
	}
	for name, in := range cases {
		if _, err := svc.SignupAdmin(ctx, in); err == nil {
			t.Errorf("%s: expected validation error", name)
		} else if de := domainErrOf(t, err); de.HTTPStatus != 400 {
			t.Errorf("%s: expected 400, got %d", name, de.HTTPStatus)
		}
	}
}

func TestDuplicateSignupRejected(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.SignupAdmin(ctx, validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.SignupAdmin(ctx, validSignup())
	if err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
	de := domainErrOf(t, err)
	if de.Code != "CONFLICT" || de.HTTPStatus != 400 {
		t.Fatalf("expected CONFLICT/400, got %s/%d", de.Code, de.HTTPStatus)
	}
}

func TestAdminAndUserEmailNamespacesAreDisjoint(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.SignupAdmin(ctx, validSignup()); err != nil {
		t.Fatalf("admin signup failed: %v", err)
	}
	// same email in the user collection is fine
	if _, err := svc.SignupUser(ctx, validSignup()); err != nil {
		t.Fatalf("user signup with same email failed: %v", err)
	}
}

func TestLoginIssuesScopeToken(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	admin, err := svc.SignupAdmin(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	got, token, _, err := svc.LoginAdmin(ctx, "a@x.com", "longenough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != admin.ID {
		t.Fatalf("expected admin %s, got %s", admin.ID, got.ID)
	}

	id, err := svc.AdminTokens().Parse(token)
	if err != nil {
		t.Fatalf("token must verify under the admin manager: %v", err)
	}
	if id != admin.ID {
		t.Fatalf("token subject mismatch: %s != %s", id, admin.ID)
	}
	if _, err := svc.UserTokens().Parse(token); err == nil {
		t.Fatalf("admin token must not verify under the user manager")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.SignupUser(ctx, validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, _, _, err := svc.LoginUser(ctx, "a@x.com", "wrongpassword"); err == nil {
		t.Fatalf("expected wrong password to fail")
	} else if de := domainErrOf(t, err); de.HTTPStatus != 403 {
		t.Fatalf("expected 403, got %d", de.HTTPStatus)
	}

	if _, _, _, err := svc.LoginUser(ctx, "nobody@x.com", "longenough"); err == nil {
		t.Fatalf("expected unknown email to fail")
	} else if de := domainErrOf(t, err); de.HTTPStatus != 403 {
		t.Fatalf("expected 403, got %d", de.HTTPStatus)
	}
}
