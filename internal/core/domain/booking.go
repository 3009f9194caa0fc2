package domain

import (
	"math"
	"time"
)

// PaymentInfo records the external payment backing a booking.
type PaymentInfo struct {
	ID     string `json:"id" bson:"id"`
	Status string `json:"status" bson:"status"`
}

// Booking is a stay reserved by UserID at PropertyID.
type Booking struct {
	ID           string      `json:"id" bson:"_id"`
	PropertyID   string      `json:"property_id" bson:"property_id"`
	UserID       string      `json:"user_id" bson:"user_id"`
	CheckInDate  time.Time   `json:"check_in_date" bson:"check_in_date"`
	CheckOutDate time.Time   `json:"check_out_date" bson:"check_out_date"`
	DaysOfStay   int         `json:"days_of_stay" bson:"days_of_stay"`
	AmountPaid   float64     `json:"amount_paid" bson:"amount_paid"`
	PaymentInfo  PaymentInfo `json:"payment_info" bson:"payment_info"`
	PaidAt       time.Time   `json:"paid_at" bson:"paid_at"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
}

// StayNights returns the number of nights between check-in and check-out,
// rounding partial days up. It returns 0 when checkOut is not after checkIn.
func StayNights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Price computes the stay length and amount due for the booking's dates at
// the given nightly rate.
func (b *Booking) Price(pricePerNight float64) {
	b.DaysOfStay = StayNights(b.CheckInDate, b.CheckOutDate)
	b.AmountPaid = float64(b.DaysOfStay) * pricePerNight
}
