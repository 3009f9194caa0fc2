package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")

	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review %w", ErrNotFound)

	ErrUserExists   = errors.New("user already exists")
	ErrReviewExists = errors.New("property already reviewed by this user")
)

// Error attaches a client-facing message to one of the sentinel errors above.
// errors.Is(err, ErrForbidden) keeps working through it.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports that actor may not perform action.
func Forbidden(actor *User, action string) error {
	id := ""
	if actor != nil {
		id = actor.ID
	}
	return Errorf(ErrForbidden, "user %s is not authorized to %s", id, action)
}
