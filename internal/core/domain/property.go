package domain

import "time"

// PropertyType enumerates the kinds of listing a host can publish.
type PropertyType string

const (
	PropertyApartment PropertyType = "Apartment"
	PropertyHouse     PropertyType = "House"
	PropertyVilla     PropertyType = "Villa"
	PropertyCabin     PropertyType = "Cabin"
	PropertyCottage   PropertyType = "Cottage"
	PropertyLoft      PropertyType = "Loft"
	PropertyOther     PropertyType = "Other"
)

// Location is a GeoJSON point plus its postal breakdown.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
	FormattedAddress string    `json:"formatted_address,omitempty" bson:"formatted_address,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

// Property is a listing that can be booked and reviewed. UserID is the owner.
type Property struct {
	ID            string       `json:"id" bson:"_id"`
	Title         string       `json:"title" bson:"title"`
	Description   string       `json:"description" bson:"description"`
	Address       string       `json:"address" bson:"address"`
	Location      Location     `json:"location" bson:"location"`
	PricePerNight float64      `json:"price_per_night" bson:"price_per_night"`
	Bedrooms      int          `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int          `json:"bathrooms" bson:"bathrooms"`
	Guests        int          `json:"guests" bson:"guests"`
	Amenities     []string     `json:"amenities" bson:"amenities"`
	PropertyType  PropertyType `json:"property_type" bson:"property_type"`
	Photos        []string     `json:"photos" bson:"photos"`
	IsFeatured    bool         `json:"is_featured" bson:"is_featured"`
	AverageRating float64      `json:"average_rating" bson:"average_rating"`
	UserID        string       `json:"user_id" bson:"user_id"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" bson:"updated_at"`
}

// PropertySummary is the slice of a property embedded in booking listings.
type PropertySummary struct {
	ID            string   `json:"id" bson:"_id"`
	Title         string   `json:"title" bson:"title"`
	Location      Location `json:"location" bson:"location"`
	PricePerNight float64  `json:"price_per_night" bson:"price_per_night"`
	Photos        []string `json:"photos" bson:"photos"`
}

// Summary projects p onto a PropertySummary.
func (p *Property) Summary() PropertySummary {
	return PropertySummary{
		ID:            p.ID,
		Title:         p.Title,
		Location:      p.Location,
		PricePerNight: p.PricePerNight,
		Photos:        p.Photos,
	}
}
