package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256 session tokens. Tokens carry the
// user id as subject plus a random id used for revocation.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.TokenDenylist
	now      func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithDenylist makes Verify reject revoked tokens and lets Revoke record them.
func WithDenylist(d ports.TokenDenylist) TokenOption {
	return func(s *TokenService) { s.denylist = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime given to new tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(_ context.Context, userID string) (string, *domain.SessionClaims, error) {
	if userID == "" {
		return "", nil, errors.New("issue token: empty subject")
	}

	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return signed, toSessionClaims(&claims), nil
}

// Verify accepts a token only if the signature, algorithm, expiry and subject
// all check out and the token has not been revoked. Expiry is exclusive: a
// token presented exactly at its exp instant is rejected.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.SessionClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.Contains(ctx, claims.ID)
		if err != nil {
			// fail closed: an unreadable denylist cannot vouch for the token
			return nil, fmt.Errorf("%w: denylist lookup: %w", domain.ErrInvalidToken, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
		}
	}

	return toSessionClaims(&claims), nil
}

// Revoke denylists the token until its natural expiry. Without a denylist it
// is a no-op and the token stays valid until it expires.
func (s *TokenService) Revoke(ctx context.Context, claims *domain.SessionClaims) error {
	if s.denylist == nil || claims == nil || claims.TokenID == "" {
		return nil
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	if err := s.denylist.Add(ctx, claims.TokenID, remaining); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func toSessionClaims(c *jwt.RegisteredClaims) *domain.SessionClaims {
	out := &domain.SessionClaims{UserID: c.Subject, TokenID: c.ID}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
