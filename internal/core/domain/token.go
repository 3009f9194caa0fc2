package domain

import "time"

// SessionClaims is what a verified session token proves.
type SessionClaims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
