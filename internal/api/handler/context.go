package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/api/middleware"
	"github.com/staylink/booking-api/internal/core/domain"
)

// actor returns the authenticated user placed on the context by the
// Authenticate middleware. Its absence means the route was registered
// without protection, so it is reported as unauthenticated.
func actor(c echo.Context) (*domain.User, error) {
	u, ok := middleware.Identity(c)
	if !ok {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "you are not logged in, please log in to get access")
	}
	return u, nil
}
