package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not be able to tell which occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrForbidden          = errors.New("access forbidden")
)

// ConflictError is returned when a write would register a plate that another
// vehicle already holds. Plate carries the normalized value the caller
// submitted, not the stored one.
type ConflictError struct {
	Plate string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a vehicle with plate %s already exists", e.Plate)
}

// NotFoundError is returned when no vehicle has the requested id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vehicle with id %d not found", e.ID)
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every field problem found in a request so the
// caller gets all of them in one response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Reason)
	}
	return strings.Join(reasons, "; ")
}
