package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-marketplace/internal/auth"
	"github.com/spec-kit/course-marketplace/internal/config"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

// SignupInput carries the signup payload for either principal kind.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService coordinates signup and login for both principal kinds. Admins
// and users live in disjoint collections and their tokens are signed with
// disjoint secrets.
type AuthService struct {
	admins      repository.AdminRepository
	users       repository.UserRepository
	adminTokens *auth.TokenManager
	userTokens  *auth.TokenManager
	bcryptCost  int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AdminRepo repository.AdminRepository
	UserRepo  repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:      deps.AdminRepo,
		users:       deps.UserRepo,
		adminTokens: auth.NewTokenManager(cfg.AdminJWTSecret, cfg.TokenTTL()),
		userTokens:  auth.NewTokenManager(cfg.UserJWTSecret, cfg.TokenTTL()),
		bcryptCost:  cfg.BcryptCost,
	}
}

// SignupAdmin creates a new admin account.
func (s *AuthService) SignupAdmin(ctx context.Context, in SignupInput) (*domain.Admin, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	if _, err := s.admins.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewDuplicate("Admin already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicate("Admin already exists")
		}
		return nil, err
	}
	return admin, nil
}

// LoginAdmin authenticates an admin and issues an admin-scope token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewForbidden("Invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewForbidden("Invalid credentials")
	}

	token, exp, err := s.adminTokens.Issue(admin.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// SignupUser creates a new end-user account.
func (s *AuthService) SignupUser(ctx context.Context, in SignupInput) (*domain.User, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewDuplicate("User already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicate("User already exists")
		}
		return nil, err
	}
	return user, nil
}

// LoginUser authenticates an end-user and issues a user-scope token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewForbidden("Invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewForbidden("Invalid credentials")
	}

	token, exp, err := s.userTokens.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout is stateless: tokens stay cryptographically valid until natural
// expiry, clearing the cookie is the client-side convention.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// AdminTokens exposes the admin token manager for guard construction.
func (s *AuthService) AdminTokens() *auth.TokenManager {
	return s.adminTokens
}

// UserTokens exposes the user token manager for guard construction.
func (s *AuthService) UserTokens() *auth.TokenManager {
	return s.userTokens
}

func validateSignup(in SignupInput) error {
	var messages []string
	if len(in.FirstName) < 2 {
		messages = append(messages, "First name should be at least 2 chars long")
	}
	if len(in.LastName) < 2 {
		messages = append(messages, "Last name should be at least 2 chars long")
	}
	if !validEmail(in.Email) {
		messages = append(messages, "Invalid email")
	}
	if len(in.Password) < 8 {
		messages = append(messages, "Password must be at least 8 chars long")
	}
	if len(messages) > 0 {
		return apperrors.NewValidationError("invalid signup payload", map[string]any{"errors": messages})
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
