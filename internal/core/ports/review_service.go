package ports

import (
	"context"

	"github.com/staylink/booking-api/internal/core/domain"
)

// ReviewInput carries a new review.
type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

// UpdateReviewInput carries a partial review update. Nil fields are left untouched.
type UpdateReviewInput struct {
	Title  *string
	Text   *string
	Rating *int
}

type ReviewService interface {
	Add(ctx context.Context, actor *domain.User, propertyID string, in ReviewInput) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	ListForProperty(ctx context.Context, propertyID string) ([]*domain.Review, error)
	ListMine(ctx context.Context, actor *domain.User) ([]*domain.Review, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

// RatingScheduler queues a recomputation of a property's average rating.
type RatingScheduler interface {
	Schedule(propertyID string)
}

// RatingRecalculator recomputes and stores a property's average rating.
type RatingRecalculator interface {
	RecalculateRating(ctx context.Context, propertyID string) error
}
