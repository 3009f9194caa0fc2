package handler

import (
	"strings"
	"time"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// date accepts either a calendar date ("2024-05-01") or an RFC 3339 timestamp.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return domain.Errorf(domain.ErrValidation, "invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t
	return nil
}

type paymentInfoRequest struct {
	ID     string `json:"id"     validate:"required"`
	Status string `json:"status" validate:"required"`
}

type createBookingRequest struct {
	// PropertyID is ignored on the nested /properties/:propertyId/bookings route.
	PropertyID   string             `json:"property_id"`
	CheckInDate  date               `json:"check_in_date"`
	CheckOutDate date               `json:"check_out_date"`
	PaymentInfo  paymentInfoRequest `json:"payment_info"`
	PaidAt       *date              `json:"paid_at"`
}

type updateBookingRequest struct {
	CheckInDate  *date               `json:"check_in_date"`
	CheckOutDate *date               `json:"check_out_date"`
	PaymentInfo  *paymentInfoRequest `json:"payment_info"`
}

// bookingResponse is a booking with the booked property's summary inlined.
type bookingResponse struct {
	*domain.Booking
	Property *domain.PropertySummary `json:"property"`
}

func (r createBookingRequest) toInput(propertyID string) ports.CreateBookingInput {
	in := ports.CreateBookingInput{
		PropertyID:   propertyID,
		CheckInDate:  r.CheckInDate.Time,
		CheckOutDate: r.CheckOutDate.Time,
		PaymentInfo:  domain.PaymentInfo{ID: r.PaymentInfo.ID, Status: r.PaymentInfo.Status},
	}
	if r.PaidAt != nil {
		in.PaidAt = r.PaidAt.Time
	}
	return in
}

func (r updateBookingRequest) toInput() ports.UpdateBookingInput {
	var in ports.UpdateBookingInput
	if r.CheckInDate != nil {
		t := r.CheckInDate.Time
		in.CheckInDate = &t
	}
	if r.CheckOutDate != nil {
		t := r.CheckOutDate.Time
		in.CheckOutDate = &t
	}
	if r.PaymentInfo != nil {
		in.PaymentInfo = &domain.PaymentInfo{ID: r.PaymentInfo.ID, Status: r.PaymentInfo.Status}
	}
	return in
}

func toBookingResponses(items []ports.BookingWithProperty) []bookingResponse {
	out := make([]bookingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, bookingResponse{Booking: it.Booking, Property: it.Property})
	}
	return out
}
