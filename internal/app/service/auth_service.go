package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"career_advisor/internal/common"
	"career_advisor/internal/common/security"
	"career_advisor/internal/domain/model"
	"career_advisor/internal/domain/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims so lookups and the unique index
// agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Register creates a user with no onboarding record. It returns no token
// and no sensitive data; the user logs in separately.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return fmt.Errorf("full name, email and password are required: %w", common.ErrValidation)
	}
	if nameLen := utf8.RuneCountInString(req.FullName); nameLen < model.MinFullNameLen || nameLen > model.MaxFullNameLen {
		return fmt.Errorf("full name must be %d-%d characters: %w", model.MinFullNameLen, model.MaxFullNameLen, common.ErrValidation)
	}
	email := NormalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format: %w", common.ErrValidation)
	}
	if len(req.Password) < model.MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", model.MinPasswordLen, common.ErrValidation)
	}

	// Pre-check is an optimization; the store's unique index is the real
	// guarantee and also maps to ErrDuplicateUser on insert.
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return common.ErrDuplicateUser
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	return nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so responses cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}
	email := NormalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Email, user.FullName)
	if err != nil {
		if errors.Is(err, security.ErrMissingKey) {
			return nil, common.ErrInternalConfig
		}
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: token, User: user.Public()}, nil
}
