package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/service"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

// AdminsHandler exposes auth endpoints for admins.
type AdminsHandler struct {
	auth          *service.AuthService
	secureCookies bool
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(authService *service.AuthService, secureCookies bool) *AdminsHandler {
	return &AdminsHandler{auth: authService, secureCookies: secureCookies}
}

// Signup handles POST /admin/signup.
func (h *AdminsHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.auth.SignupAdmin(c.Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Signup success",
		"data":    dto.AdminResponse(admin),
	})
}

// Login handles POST /admin/login.
func (h *AdminsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, exp, h.secureCookies)
	return c.JSON(fiber.Map{
		"message": "Login success",
		"data": fiber.Map{
			"admin": dto.AdminResponse(admin),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /admin/logout. Tokens are stateless, so logout only
// clears the browser cookie.
func (h *AdminsHandler) Logout(c *fiber.Ctx) error {
	if c.Cookies(sessionCookieName) == "" {
		return apperrors.NewUnauthorized("Kindly login first")
	}
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logout success"})
}

const sessionCookieName = "jwt"

func setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
