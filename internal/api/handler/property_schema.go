package handler

import (
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

type locationRequest struct {
	Coordinates      []float64 `json:"coordinates"       validate:"required,len=2"`
	FormattedAddress string    `json:"formatted_address"`
	Street           string    `json:"street"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Zipcode          string    `json:"zipcode"`
	Country          string    `json:"country"`
}

type createPropertyRequest struct {
	Title         string          `json:"title"           validate:"required,max=100"`
	Description   string          `json:"description"     validate:"required"`
	Address       string          `json:"address"         validate:"required"`
	Location      locationRequest `json:"location"`
	PricePerNight float64         `json:"price_per_night" validate:"required,gt=0"`
	Bedrooms      int             `json:"bedrooms"        validate:"min=0"`
	Bathrooms     int             `json:"bathrooms"       validate:"min=0"`
	Guests        int             `json:"guests"          validate:"min=0"`
	Amenities     []string        `json:"amenities"`
	PropertyType  string          `json:"property_type"   validate:"required"`
	Photos        []string        `json:"photos"          validate:"required,min=1"`
	IsFeatured    bool            `json:"is_featured"`
}

type updatePropertyRequest struct {
	Title         *string          `json:"title"           validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Address       *string          `json:"address"`
	Location      *locationRequest `json:"location"`
	PricePerNight *float64         `json:"price_per_night" validate:"omitempty,gt=0"`
	Bedrooms      *int             `json:"bedrooms"        validate:"omitempty,min=0"`
	Bathrooms     *int             `json:"bathrooms"       validate:"omitempty,min=0"`
	Guests        *int             `json:"guests"          validate:"omitempty,min=0"`
	Amenities     []string         `json:"amenities"`
	PropertyType  *string          `json:"property_type"`
	Photos        []string         `json:"photos"          validate:"omitempty,min=1"`
	IsFeatured    *bool            `json:"is_featured"`
}

// propertyDetailResponse is a property with its reviews inlined. Bookings are
// present only when the caller may see them.
type propertyDetailResponse struct {
	*domain.Property
	Bookings []*domain.Booking `json:"bookings,omitempty"`
	Reviews  []*domain.Review  `json:"reviews"`
}

func (l locationRequest) toDomain() domain.Location {
	return domain.Location{
		Coordinates:      l.Coordinates,
		FormattedAddress: l.FormattedAddress,
		Street:           l.Street,
		City:             l.City,
		State:            l.State,
		Zipcode:          l.Zipcode,
		Country:          l.Country,
	}
}

func (r createPropertyRequest) toInput() ports.PropertyInput {
	return ports.PropertyInput{
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		Location:      r.Location.toDomain(),
		PricePerNight: r.PricePerNight,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Guests:        r.Guests,
		Amenities:     r.Amenities,
		PropertyType:  r.PropertyType,
		Photos:        r.Photos,
		IsFeatured:    r.IsFeatured,
	}
}

func (r updatePropertyRequest) toInput() ports.UpdatePropertyInput {
	in := ports.UpdatePropertyInput{
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		PricePerNight: r.PricePerNight,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Guests:        r.Guests,
		Amenities:     r.Amenities,
		PropertyType:  r.PropertyType,
		Photos:        r.Photos,
		IsFeatured:    r.IsFeatured,
	}
	if r.Location != nil {
		loc := r.Location.toDomain()
		in.Location = &loc
	}
	return in
}

func toPropertyDetailResponse(d *ports.PropertyDetail) propertyDetailResponse {
	return propertyDetailResponse{
		Property: d.Property,
		Bookings: d.Bookings,
		Reviews:  nonNil(d.Reviews),
	}
}

// nonNil keeps empty lists rendering as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
