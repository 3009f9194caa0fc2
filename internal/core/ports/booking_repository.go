package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*domain.Booking, error)
	Replace(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id string) error
	DeleteByProperty(ctx context.Context, propertyID string) error
}
