package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

const (
	adminIDKey = "auth_admin_id"
	userIDKey  = "auth_user_id"
)

// Guard is a scope-bound authentication gate. It validates the bearer token
// against its own token manager and injects the resolved principal id into
// the request locals. It never loads the principal from storage: a principal
// deleted after issuance still authenticates until the token expires.
type Guard struct {
	tokens   *TokenManager
	localKey string
}

// NewAdminGuard gates admin-scope routes.
func NewAdminGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens, localKey: adminIDKey}
}

// NewUserGuard gates user-scope routes.
func NewUserGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens, localKey: userIDKey}
}

// Handle enforces authentication for protected routes.
func (g *Guard) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principalID, err := g.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(g.localKey, principalID)
	return c.Next()
}

// AdminIDFromContext retrieves the authenticated admin id.
func AdminIDFromContext(c *fiber.Ctx) (string, bool) {
	return principalFromContext(c, adminIDKey)
}

// UserIDFromContext retrieves the authenticated user id.
func UserIDFromContext(c *fiber.Ctx) (string, bool) {
	return principalFromContext(c, userIDKey)
}

func principalFromContext(c *fiber.Ctx, key string) (string, bool) {
	val := c.Locals(key)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
