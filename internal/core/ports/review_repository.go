package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create fails with domain.ErrReviewExists when the user already reviewed the property.
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Review, error)
	Replace(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByProperty(ctx context.Context, propertyID string) error
	// AverageRating returns the mean rating for a property, or 0 when it has no reviews.
	AverageRating(ctx context.Context, propertyID string) (float64, error)
}
