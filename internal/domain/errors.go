// internal/domain/errors.go
package domain

import "errors"

var (
	// Error categories, mapped to HTTP statuses by the handlers
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrDependency      = errors.New("dependency failure")

	// Auth-related errors
	ErrInvalidCredentials = New(ErrUnauthenticated, "Invalid credentials")
	ErrUserExists         = New(ErrConflict, "User already exists")
	ErrUserNotFound       = New(ErrNotFound, "User not found")
	ErrUsernameTaken      = New(ErrConflict, "Username already taken")

	// Access point errors
	ErrAccessPointNotFound = New(ErrNotFound, "Access point not found")
	ErrPasswordRequired    = New(ErrValidation, "Password is required")
	ErrNoPassword          = New(ErrNotFound, "No password available")

	// Organization errors
	ErrOrganizationNotFound  = New(ErrNotFound, "Organization not found")
	ErrSlugTaken             = New(ErrConflict, "Organization slug already exists")
	ErrSlugRequired          = New(ErrValidation, "Organization slug is required")
	ErrNotOrganizationMember = New(ErrForbidden, "Access denied")
	ErrNoOrganization        = New(ErrNotFound, "Not a member of any organization")

	// Favorites
	ErrAlreadyFavorite  = New(ErrConflict, "Already in favorites")
	ErrFavoriteNotFound = New(ErrNotFound, "Favorite not found")

	// External import
	ErrImportUnavailable     = New(ErrDependency, "Failed to search WiGLE database")
	ErrStatisticsUnavailable = New(ErrDependency, "Failed to fetch WiGLE statistics")
)

// Error is a categorized error carrying the message shown to API clients.
type Error struct {
	kind error
	msg  string
}

// New creates an error of the given category.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap exposes the category so callers can match with errors.Is.
func (e *Error) Unwrap() error {
	return e.kind
}

// Message returns the client-facing message for err, or fallback when err
// does not carry one.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.msg
	}
	return fallback
}
