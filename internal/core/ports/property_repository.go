package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// PropertySort names the supported orderings for property listings.
type PropertySort string

const (
	SortNewest     PropertySort = "-createdAt"
	SortOldest     PropertySort = "createdAt"
	SortPriceAsc   PropertySort = "price"
	SortPriceDesc  PropertySort = "-price"
	SortRatingDesc PropertySort = "rating"
)

// ListPropertiesFilter carries all query parameters for listing properties.
type ListPropertiesFilter struct {
	City         string  // optional: case-insensitive match on location.city
	PropertyType string  // optional
	MinPrice     float64 // optional: price_per_night >= MinPrice
	MaxPrice     float64 // optional: price_per_night <= MaxPrice (0 = unbounded)
	MinGuests    int     // optional: guests >= MinGuests
	Featured     *bool   // optional
	OwnerID      string  // optional
	Sort         PropertySort
	Page         int // 1-based
	Limit        int
}

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// FindSummary returns only the fields embedded in booking listings.
	FindSummary(ctx context.Context, id string) (*domain.PropertySummary, error)
	List(ctx context.Context, filter ListPropertiesFilter) ([]*domain.Property, int64, error)
	Replace(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
	SetAverageRating(ctx context.Context, id string, rating float64) error
}
