package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/api/metrics"
	"github.com/staylink/booking-api/internal/core/domain"
)

// Authorize permits the request when the caller's role is one of roles.
// It must run after Authenticate.
func Authorize(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := domain.NewRoleSet(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held := roleSetOf(c.Get(ContextKeyRole))
			if len(held) == 0 {
				metrics.AuthDecisionsTotal.WithLabelValues("authorize", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgNotLoggedIn).SetInternal(domain.ErrUnauthenticated)
			}
			if !held.Intersects(allowed) {
				metrics.AuthDecisionsTotal.WithLabelValues("authorize", "forbidden").Inc()
				msg := fmt.Sprintf("user role %s is not authorized to access this route", strings.Join(held.Strings(), ", "))
				return echo.NewHTTPError(http.StatusForbidden, msg).SetInternal(domain.ErrForbidden)
			}
			metrics.AuthDecisionsTotal.WithLabelValues("authorize", "allowed").Inc()
			return next(c)
		}
	}
}

// Protect returns the ordered pipeline for a protected route: authentication
// followed, when roles are given, by the role check.
func Protect(authn echo.MiddlewareFunc, roles ...domain.Role) []echo.MiddlewareFunc {
	if len(roles) == 0 {
		return []echo.MiddlewareFunc{authn}
	}
	return []echo.MiddlewareFunc{authn, Authorize(roles...)}
}

// roleSetOf normalizes whatever Authenticate (or a test) stored under the role key.
func roleSetOf(v any) domain.RoleSet {
	switch r := v.(type) {
	case domain.Role:
		return domain.NewRoleSet(r)
	case string:
		return domain.NewRoleSet(domain.Role(r))
	case []domain.Role:
		return domain.NewRoleSet(r...)
	case []string:
		roles := make([]domain.Role, len(r))
		for i, s := range r {
			roles[i] = domain.Role(s)
		}
		return domain.NewRoleSet(roles...)
	case domain.RoleSet:
		return r
	default:
		return nil
	}
}
