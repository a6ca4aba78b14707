package dto

import (
	"time"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// SignupRequest payload for admin and user signup.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalResponse is the public view of an admin or user.
type PrincipalResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// AdminResponse maps a domain admin to its public view.
func AdminResponse(admin *domain.Admin) PrincipalResponse {
	return PrincipalResponse{
		ID:        admin.ID,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Email:     admin.Email,
	}
}

// UserResponse maps a domain user to its public view.
func UserResponse(user *domain.User) PrincipalResponse {
	return PrincipalResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
