package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration, login, logout and self-service profile edits.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a user or host account. Admin accounts cannot be self-registered.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := domain.RoleUser
	if in.Role != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok || r == domain.RoleAdmin {
			return nil, domain.Errorf(domain.ErrValidation, "role must be one of: user, host")
		}
		role = r
	}

	user, err := newUser(in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks the credentials and mints a session token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &ports.LoginResult{Token: token, ExpiresAt: claims.ExpiresAt, User: user}, nil
}

// Logout revokes the session the request was authenticated with.
func (s *AuthService) Logout(ctx context.Context, claims *domain.SessionClaims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return err
	}
	if claims != nil {
		s.logger.Info().Str("user_id", claims.UserID).Msg("user logged out")
	}
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := applyUserEdits(user, in.Name, in.Email); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// newUser validates the sign-up fields and returns a user with a hashed password.
func newUser(name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, domain.Errorf(domain.ErrValidation, "name and email are required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Errorf(domain.ErrValidation, "password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func applyUserEdits(user *domain.User, name, email *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.Errorf(domain.ErrValidation, "name cannot be empty")
		}
		user.Name = n
	}
	if email != nil {
		e := normalizeEmail(*email)
		if e == "" {
			return domain.Errorf(domain.ErrValidation, "email cannot be empty")
		}
		user.Email = e
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
