package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left by UserID for PropertyID. At most one per pair.
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title" bson:"title"`
	Text       string    `json:"text" bson:"text"`
	Rating     int       `json:"rating" bson:"rating"`
	PropertyID string    `json:"property_id" bson:"property_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
