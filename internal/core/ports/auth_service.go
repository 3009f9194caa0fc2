package ports

import (
	"context"
	"time"

	"github.com/staylink/booking-api/internal/core/domain"
)

// RegisterInput carries the self-service sign-up fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginResult is a freshly minted session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// ProfileInput carries the fields a user may change on their own account.
// Nil fields are left untouched.
type ProfileInput struct {
	Name  *string
	Email *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *domain.SessionClaims) error
	UpdateProfile(ctx context.Context, actor *domain.User, in ProfileInput) (*domain.User, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, *domain.SessionClaims, error)
}

// TokenVerifier checks a presented session token. Any failure is reported as
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.SessionClaims, error)
}

// TokenService issues, verifies and revokes session tokens.
type TokenService interface {
	TokenIssuer
	TokenVerifier
	Revoke(ctx context.Context, claims *domain.SessionClaims) error
}

// TokenDenylist remembers revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}
