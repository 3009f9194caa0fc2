package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
	maxTitleLength   = 100
)

var propertyTypes = []domain.PropertyType{
	domain.PropertyApartment,
	domain.PropertyHouse,
	domain.PropertyVilla,
	domain.PropertyCabin,
	domain.PropertyCottage,
	domain.PropertyLoft,
	domain.PropertyOther,
}

type PropertyService struct {
	properties ports.PropertyRepository
	bookings   ports.BookingRepository
	reviews    ports.ReviewRepository
	logger     zerolog.Logger
}

func NewPropertyService(
	properties ports.PropertyRepository,
	bookings ports.BookingRepository,
	reviews ports.ReviewRepository,
	logger zerolog.Logger,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		bookings:   bookings,
		reviews:    reviews,
		logger:     logger,
	}
}

// List returns one page of properties. Page is 1-based; Limit is capped at maxPageLimit.
func (s *PropertyService) List(ctx context.Context, filter ports.ListPropertiesFilter) (*ports.ListPropertiesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.PropertyType != "" {
		pt, ok := parsePropertyType(filter.PropertyType)
		if !ok {
			return nil, domain.Errorf(domain.ErrValidation, "unknown property type %q", filter.PropertyType)
		}
		filter.PropertyType = string(pt)
	}

	items, total, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListPropertiesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Get loads a property together with its reviews. Bookings are attached only
// when viewer may manage the property; an anonymous viewer never gets them.
// The lookups run concurrently and any failure fails the call.
func (s *PropertyService) Get(ctx context.Context, viewer *domain.User, id string) (*ports.PropertyDetail, error) {
	var (
		detail   ports.PropertyDetail
		bookings []*domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.properties.FindByID(gctx, id)
		if err != nil {
			return propertyLookupError(err, id)
		}
		detail.Property = p
		return nil
	})
	if viewer != nil {
		g.Go(func() error {
			b, err := s.bookings.ListByProperty(gctx, id)
			bookings = b
			return err
		})
	}
	g.Go(func() error {
		r, err := s.reviews.ListByProperty(gctx, id)
		detail.Reviews = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if viewer != nil && domain.CanMutate(viewer, detail.Property.UserID) {
		if bookings == nil {
			bookings = []*domain.Booking{}
		}
		detail.Bookings = bookings
	}
	return &detail, nil
}

func (s *PropertyService) Create(ctx context.Context, actor *domain.User, in ports.PropertyInput) (*domain.Property, error) {
	pt, ok := parsePropertyType(in.PropertyType)
	if !ok {
		return nil, domain.Errorf(domain.ErrValidation, "unknown property type %q", in.PropertyType)
	}

	now := time.Now().UTC()
	p := &domain.Property{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Address:       in.Address,
		Location:      normalizeLocation(in.Location),
		PricePerNight: in.PricePerNight,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		Guests:        in.Guests,
		Amenities:     in.Amenities,
		PropertyType:  pt,
		Photos:        in.Photos,
		IsFeatured:    in.IsFeatured,
		UserID:        actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	if err := s.properties.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}
	s.logger.Info().Str("property_id", p.ID).Str("user_id", actor.ID).Msg("property created")
	return p, nil
}

// Update applies a partial update. The ownership check runs after the load
// and before anything is written.
func (s *PropertyService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdatePropertyInput) (*domain.Property, error) {
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, propertyLookupError(err, id)
	}
	if !domain.CanMutate(actor, p.UserID) {
		return nil, domain.Forbidden(actor, "update property "+id)
	}

	if err := applyPropertyUpdate(p, in); err != nil {
		return nil, err
	}
	if err := validateProperty(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.properties.Replace(ctx, p); err != nil {
		return nil, propertyLookupError(err, id)
	}
	return p, nil
}

// Delete removes a property and, best effort, its bookings and reviews.
func (s *PropertyService) Delete(ctx context.Context, actor *domain.User, id string) error {
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return propertyLookupError(err, id)
	}
	if !domain.CanMutate(actor, p.UserID) {
		return domain.Forbidden(actor, "delete property "+id)
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		return propertyLookupError(err, id)
	}
	if err := s.bookings.DeleteByProperty(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("property_id", id).Msg("failed to remove bookings of deleted property")
	}
	if err := s.reviews.DeleteByProperty(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("property_id", id).Msg("failed to remove reviews of deleted property")
	}
	s.logger.Info().Str("property_id", id).Str("user_id", actor.ID).Msg("property deleted")
	return nil
}

func applyPropertyUpdate(p *domain.Property, in ports.UpdatePropertyInput) error {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Location != nil {
		p.Location = normalizeLocation(*in.Location)
	}
	if in.PricePerNight != nil {
		p.PricePerNight = *in.PricePerNight
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	if in.Guests != nil {
		p.Guests = *in.Guests
	}
	if in.Amenities != nil {
		p.Amenities = in.Amenities
	}
	if in.PropertyType != nil {
		pt, ok := parsePropertyType(*in.PropertyType)
		if !ok {
			return domain.Errorf(domain.ErrValidation, "unknown property type %q", *in.PropertyType)
		}
		p.PropertyType = pt
	}
	if in.Photos != nil {
		p.Photos = in.Photos
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	return nil
}

func validateProperty(p *domain.Property) error {
	switch {
	case p.Title == "":
		return domain.Errorf(domain.ErrValidation, "title is required")
	case len(p.Title) > maxTitleLength:
		return domain.Errorf(domain.ErrValidation, "title cannot be more than %d characters", maxTitleLength)
	case p.PricePerNight <= 0:
		return domain.Errorf(domain.ErrValidation, "price per night must be greater than 0")
	case len(p.Photos) == 0:
		return domain.Errorf(domain.ErrValidation, "at least one photo is required")
	case len(p.Location.Coordinates) != 2:
		return domain.Errorf(domain.ErrValidation, "location coordinates must be [lng, lat]")
	}
	return nil
}

// parsePropertyType matches s case-insensitively against the known types.
func parsePropertyType(s string) (domain.PropertyType, bool) {
	for _, pt := range propertyTypes {
		if strings.EqualFold(string(pt), strings.TrimSpace(s)) {
			return pt, true
		}
	}
	return "", false
}

func normalizeLocation(l domain.Location) domain.Location {
	l.Type = "Point"
	return l
}

// propertyLookupError gives a not-found error a message naming the id.
func propertyLookupError(err error, id string) error {
	if errors.Is(err, domain.ErrPropertyNotFound) {
		return domain.Errorf(domain.ErrPropertyNotFound, "property not found with id of %s", id)
	}
	return err
}
