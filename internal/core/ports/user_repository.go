package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// UserRepository is the credential store. FindByEmail returns the user with
// its password hash populated; every other read may leave it empty.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
