// store/errors.go
package store

import (
	"errors"
	"fmt"
)

// The taxonomy the stores surface: bad input, bad credentials/session, and
// operations against a missing id. Failures are also recorded in the owning
// store's error field for display and cleared on the next attempt.

var (
	ErrInvalidCredentials = &AuthError{Reason: "invalid credentials"}
	ErrNoSession          = &AuthError{Reason: "no valid session"}
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
