package users

import (
	"errors"
	"fmt"
)

// ErrUserNotFound matches, via errors.Is, every lookup that found no row
var ErrUserNotFound = errors.New("user not found")

// User error types
const (
	UserErrorTypeNotFound = "not_found"
)

// UserError represents errors related to user storage operations
type UserError struct {
	Type    string
	UserID  int64
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s] for user %d: %s (caused by: %v)", e.Type, e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s] for user %d: %s", e.Type, e.UserID, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// Is reports not_found errors as ErrUserNotFound
func (e *UserError) Is(target error) bool {
	return target == ErrUserNotFound && e.Type == UserErrorTypeNotFound
}

// NewUserNotFoundError creates an error for when no row matches the id
func NewUserNotFoundError(id int64) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  id,
		Message: "user not found",
	}
}
