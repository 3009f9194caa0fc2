package ports

import (
	"context"
	"time"

	"github.com/staylink/booking-api/internal/core/domain"
)

// CreateBookingInput carries a new reservation. PaidAt defaults to now.
type CreateBookingInput struct {
	PropertyID   string
	CheckInDate  time.Time
	CheckOutDate time.Time
	PaymentInfo  domain.PaymentInfo
	PaidAt       time.Time
}

// UpdateBookingInput carries a partial booking update. Nil fields are left untouched.
type UpdateBookingInput struct {
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	PaymentInfo  *domain.PaymentInfo
}

// BookingWithProperty is a booking enriched with the booked property's summary.
// Property is nil when the property no longer exists.
type BookingWithProperty struct {
	Booking  *domain.Booking
	Property *domain.PropertySummary
}

type BookingService interface {
	Create(ctx context.Context, actor *domain.User, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	ListMine(ctx context.Context, actor *domain.User) ([]BookingWithProperty, error)
	ListForProperty(ctx context.Context, actor *domain.User, propertyID string) ([]*domain.Booking, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
