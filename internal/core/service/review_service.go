package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

type ReviewService struct {
	reviews    ports.ReviewRepository
	properties ports.PropertyRepository
	ratings    ports.RatingScheduler
	logger     zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	properties ports.PropertyRepository,
	ratings ports.RatingScheduler,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		properties: properties,
		ratings:    ratings,
		logger:     logger,
	}
}

// Add records the actor's review of a property. A second review of the same
// property by the same user fails with domain.ErrReviewExists.
func (s *ReviewService) Add(ctx context.Context, actor *domain.User, propertyID string, in ports.ReviewInput) (*domain.Review, error) {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, propertyLookupError(err, propertyID)
	}

	now := time.Now().UTC()
	r := &domain.Review{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(in.Title),
		Text:       in.Text,
		Rating:     in.Rating,
		PropertyID: propertyID,
		UserID:     actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validateReview(r); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	s.ratings.Schedule(propertyID)
	s.logger.Info().Str("review_id", r.ID).Str("property_id", propertyID).Int("rating", r.Rating).Msg("review added")
	return r, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.load(ctx, id)
}

func (s *ReviewService) ListForProperty(ctx context.Context, propertyID string) ([]*domain.Review, error) {
	return s.reviews.ListByProperty(ctx, propertyID)
}

func (s *ReviewService) ListMine(ctx context.Context, actor *domain.User) ([]*domain.Review, error) {
	return s.reviews.ListByUser(ctx, actor.ID)
}

func (s *ReviewService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateReviewInput) (*domain.Review, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor, r.UserID) {
		return nil, domain.Forbidden(actor, "update review "+id)
	}

	if in.Title != nil {
		r.Title = strings.TrimSpace(*in.Title)
	}
	if in.Text != nil {
		r.Text = *in.Text
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if err := validateReview(r); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Replace(ctx, r); err != nil {
		return nil, reviewLookupError(err, id)
	}
	if in.Rating != nil {
		s.ratings.Schedule(r.PropertyID)
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actor, r.UserID) {
		return domain.Forbidden(actor, "delete review "+id)
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return reviewLookupError(err, id)
	}
	s.ratings.Schedule(r.PropertyID)
	return nil
}

func (s *ReviewService) load(ctx context.Context, id string) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, reviewLookupError(err, id)
	}
	return r, nil
}

func validateReview(r *domain.Review) error {
	switch {
	case r.Title == "":
		return domain.Errorf(domain.ErrValidation, "please add a title for the review")
	case len(r.Title) > maxTitleLength:
		return domain.Errorf(domain.ErrValidation, "title cannot be more than %d characters", maxTitleLength)
	case strings.TrimSpace(r.Text) == "":
		return domain.Errorf(domain.ErrValidation, "please add some text")
	case r.Rating < domain.MinRating || r.Rating > domain.MaxRating:
		return domain.Errorf(domain.ErrValidation, "rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	return nil
}

func reviewLookupError(err error, id string) error {
	if errors.Is(err, domain.ErrReviewNotFound) {
		return domain.Errorf(domain.ErrReviewNotFound, "no review with the id of %s", id)
	}
	return err
}

// RatingService keeps Property.AverageRating in step with the property's reviews.
type RatingService struct {
	reviews    ports.ReviewRepository
	properties ports.PropertyRepository
	logger     zerolog.Logger
}

func NewRatingService(reviews ports.ReviewRepository, properties ports.PropertyRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{reviews: reviews, properties: properties, logger: logger}
}

// RecalculateRating stores the mean review rating on the property. A property
// deleted in the meantime is not an error.
func (s *RatingService) RecalculateRating(ctx context.Context, propertyID string) error {
	avg, err := s.reviews.AverageRating(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := s.properties.SetAverageRating(ctx, propertyID, avg); err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return nil
		}
		return err
	}
	s.logger.Debug().Str("property_id", propertyID).Float64("average_rating", avg).Msg("rating recalculated")
	return nil
}
