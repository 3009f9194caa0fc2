package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/api/metrics"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// Context keys set by Authenticate.
const (
	ContextKeyUser   = "user"
	ContextKeyRole   = "role"
	ContextKeyClaims = "claims"
)

const (
	msgNotLoggedIn    = "you are not logged in, please log in to get access"
	msgInvalidSession = "invalid or expired session, please log in again"
)

// UserFinder resolves the identity named by a verified token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Authenticate resolves the caller from a session token and stores the user,
// its role and the token claims on the echo context. The token is read from
// the Authorization bearer header first, then from cookieName.
func Authenticate(tokens ports.TokenVerifier, users UserFinder, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c, cookieName)
			if raw == "" {
				metrics.AuthDecisionsTotal.WithLabelValues("authenticate", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgNotLoggedIn).SetInternal(domain.ErrUnauthenticated)
			}
			if err := resolveIdentity(c, tokens, users, raw, log); err != nil {
				return err
			}
			metrics.AuthDecisionsTotal.WithLabelValues("authenticate", "allowed").Inc()
			return next(c)
		}
	}
}

// Identify is the optional form of Authenticate for public routes whose
// response depends on who is asking. A missing or rejected token leaves the
// request anonymous; only a store failure aborts it.
func Identify(tokens ports.TokenVerifier, users UserFinder, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c, cookieName)
			if raw == "" {
				return next(c)
			}
			err := resolveIdentity(c, tokens, users, raw, log)
			var he *echo.HTTPError
			if err != nil && !(errors.As(err, &he) && he.Code == http.StatusUnauthorized) {
				return err
			}
			return next(c)
		}
	}
}

func resolveIdentity(c echo.Context, tokens ports.TokenVerifier, users UserFinder, raw string, log zerolog.Logger) error {
	ctx := c.Request().Context()
	claims, err := tokens.Verify(ctx, raw)
	if err != nil {
		metrics.AuthDecisionsTotal.WithLabelValues("authenticate", "invalid_token").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidSession).SetInternal(err)
	}

	user, err := users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthDecisionsTotal.WithLabelValues("authenticate", "invalid_token").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidSession).SetInternal(err)
		}
		metrics.AuthDecisionsTotal.WithLabelValues("authenticate", "error").Inc()
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("load authenticated user")
		return err
	}

	c.Set(ContextKeyUser, user)
	c.Set(ContextKeyRole, user.Role)
	c.Set(ContextKeyClaims, claims)
	return nil
}

// Identity returns the user stored by Authenticate.
func Identity(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(ContextKeyUser).(*domain.User)
	return u, ok && u != nil
}

// Claims returns the verified token claims stored by Authenticate.
func Claims(c echo.Context) (*domain.SessionClaims, bool) {
	cl, ok := c.Get(ContextKeyClaims).(*domain.SessionClaims)
	return cl, ok && cl != nil
}

// tokenFromRequest prefers a bearer header. Any other scheme is ignored and
// the cookie is consulted instead.
func tokenFromRequest(c echo.Context, cookieName string) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			return tok
		}
	}
	if cookieName == "" {
		return ""
	}
	if ck, err := c.Cookie(cookieName); err == nil {
		return ck.Value
	}
	return ""
}
