package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/dto"
	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/service"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

// UsersHandler exposes auth and purchase-history endpoints for end-users.
type UsersHandler struct {
	auth          *service.AuthService
	purchases     *service.PurchaseService
	secureCookies bool
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, purchaseService *service.PurchaseService, secureCookies bool) *UsersHandler {
	return &UsersHandler{auth: authService, purchases: purchaseService, secureCookies: secureCookies}
}

// Signup handles POST /user/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.SignupUser(c.Context(), service.SignupInput{
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
		"data":    dto.UserResponse(user),
	})
}

// Login handles POST /user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, exp, h.secureCookies)
	return c.JSON(fiber.Map{
		"message": "Login success",
		"data": fiber.Map{
			"user": dto.UserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /user/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if c.Cookies(sessionCookieName) == "" {
		return apperrors.NewUnauthorized("Kindly login first")
	}
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logout success"})
}

// Purchases handles GET /user/purchases.
func (h *UsersHandler) Purchases(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	history, err := h.purchases.History(c.Context(), userID)
	if err != nil {
		return err
	}

	items := make([]dto.PurchaseHistoryItem, 0, len(history))
	for i := range history {
		items = append(items, dto.PurchaseHistoryItem{
			Purchase: dto.NewPurchaseResponse(&history[i].Purchase),
			Course:   dto.NewCourseResponse(&history[i].Course),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
