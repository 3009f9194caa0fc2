package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// PropertyInput carries the writable property fields for create.
type PropertyInput struct {
	Title         string
	Description   string
	Address       string
	Location      domain.Location
	PricePerNight float64
	Bedrooms      int
	Bathrooms     int
	Guests        int
	Amenities     []string
	PropertyType  string
	Photos        []string
	IsFeatured    bool
}

// UpdatePropertyInput carries a partial property update. Nil fields are left untouched.
type UpdatePropertyInput struct {
	Title         *string
	Description   *string
	Address       *string
	Location      *domain.Location
	PricePerNight *float64
	Bedrooms      *int
	Bathrooms     *int
	Guests        *int
	Amenities     []string
	PropertyType  *string
	Photos        []string
	IsFeatured    *bool
}

// PropertyDetail is a property together with its reviews. Bookings is nil
// unless the viewer owns the property or is an admin.
type PropertyDetail struct {
	Property *domain.Property
	Bookings []*domain.Booking
	Reviews  []*domain.Review
}

// ListPropertiesResult is a page of properties.
type ListPropertiesResult struct {
	Items      []*domain.Property
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type PropertyService interface {
	List(ctx context.Context, filter ListPropertiesFilter) (*ListPropertiesResult, error)
	Get(ctx context.Context, viewer *domain.User, id string) (*PropertyDetail, error)
	Create(ctx context.Context, actor *domain.User, in PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
