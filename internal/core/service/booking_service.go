package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// maxConcurrentLookups bounds the property lookups fanned out per booking listing.
const maxConcurrentLookups = 8

type BookingService struct {
	bookings   ports.BookingRepository
	properties ports.PropertyRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewBookingService(bookings ports.BookingRepository, properties ports.PropertyRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		logger:     logger,
		now:        time.Now,
	}
}

// Create books the property for the acting user. The stay length is rounded
// up to whole nights and the amount is nights times the nightly price.
func (s *BookingService) Create(ctx context.Context, actor *domain.User, in ports.CreateBookingInput) (*domain.Booking, error) {
	if err := validateStay(in.CheckInDate, in.CheckOutDate); err != nil {
		return nil, err
	}

	property, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, domain.Errorf(domain.ErrPropertyNotFound, "no property with the id of %s", in.PropertyID)
		}
		return nil, err
	}

	now := s.now().UTC()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	b := &domain.Booking{
		ID:           uuid.NewString(),
		PropertyID:   property.ID,
		UserID:       actor.ID,
		CheckInDate:  in.CheckInDate.UTC(),
		CheckOutDate: in.CheckOutDate.UTC(),
		PaymentInfo:  in.PaymentInfo,
		PaidAt:       paidAt.UTC(),
		CreatedAt:    now,
	}
	b.Price(property.PricePerNight)

	if err := s.bookings.Create(ctx, b); err != nil {
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("property_id", b.PropertyID).
		Str("user_id", actor.ID).
		Int("nights", b.DaysOfStay).
		Msg("booking created")
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor, b.UserID) {
		return nil, domain.Forbidden(actor, "access booking "+id)
	}
	return b, nil
}

// ListMine returns the actor's bookings, each with a summary of the booked
// property. Property lookups run concurrently; a property that no longer
// exists leaves the summary empty rather than failing the listing.
func (s *BookingService) ListMine(ctx context.Context, actor *domain.User) ([]ports.BookingWithProperty, error) {
	bookings, err := s.bookings.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.BookingWithProperty, len(bookings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, b := range bookings {
		out[i].Booking = b
		g.Go(func() error {
			summary, err := s.properties.FindSummary(gctx, b.PropertyID)
			if err != nil {
				if errors.Is(err, domain.ErrPropertyNotFound) {
					return nil
				}
				return err
			}
			out[i].Property = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForProperty returns a property's bookings to its owner or an admin.
func (s *BookingService) ListForProperty(ctx context.Context, actor *domain.User, propertyID string) ([]*domain.Booking, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, propertyLookupError(err, propertyID)
	}
	if !domain.CanMutate(actor, property.UserID) {
		return nil, domain.Forbidden(actor, "list bookings of property "+propertyID)
	}
	return s.bookings.ListByProperty(ctx, propertyID)
}

// Update changes dates and/or payment info. New dates are re-priced at the
// property's current nightly rate.
func (s *BookingService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor, b.UserID) {
		return nil, domain.Forbidden(actor, "update booking "+id)
	}

	datesChanged := false
	if in.CheckInDate != nil {
		b.CheckInDate = in.CheckInDate.UTC()
		datesChanged = true
	}
	if in.CheckOutDate != nil {
		b.CheckOutDate = in.CheckOutDate.UTC()
		datesChanged = true
	}
	if in.PaymentInfo != nil {
		b.PaymentInfo = *in.PaymentInfo
	}

	if datesChanged {
		if err := validateStay(b.CheckInDate, b.CheckOutDate); err != nil {
			return nil, err
		}
		property, err := s.properties.FindByID(ctx, b.PropertyID)
		if err != nil {
			return nil, propertyLookupError(err, b.PropertyID)
		}
		b.Price(property.PricePerNight)
	}

	if err := s.bookings.Replace(ctx, b); err != nil {
		return nil, bookingLookupError(err, id)
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, actor *domain.User, id string) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actor, b.UserID) {
		return domain.Forbidden(actor, "delete booking "+id)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return bookingLookupError(err, id)
	}
	s.logger.Info().Str("booking_id", id).Str("user_id", actor.ID).Msg("booking deleted")
	return nil
}

func (s *BookingService) load(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, bookingLookupError(err, id)
	}
	return b, nil
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return domain.Errorf(domain.ErrValidation, "check-in and check-out dates are required")
	}
	if !checkOut.After(checkIn) {
		return domain.Errorf(domain.ErrValidation, "check-out date must be after check-in date")
	}
	return nil
}

func bookingLookupError(err error, id string) error {
	if errors.Is(err, domain.ErrBookingNotFound) {
		return domain.Errorf(domain.ErrBookingNotFound, "no booking with the id of %s", id)
	}
	return err
}
