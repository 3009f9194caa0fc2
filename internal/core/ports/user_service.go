package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// CreateUserInput is the admin-side account creation payload. Any role is allowed.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries admin edits. Nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// UserService is the admin user-management surface.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
