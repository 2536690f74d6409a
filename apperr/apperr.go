// apperr/apperr.go - service error taxonomy
package apperr

import "errors"

var (
	// ErrValidation marks a request rejected for a missing or malformed field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that resolved to nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write refused because an equivalent row already exists.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState marks a transition attempted from a terminal state.
	ErrInvalidState = errors.New("invalid state")
	// ErrForbidden marks a caller acting outside their authorization.
	ErrForbidden = errors.New("forbidden")
)

func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
