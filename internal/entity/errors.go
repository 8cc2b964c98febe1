package entity

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no session")
	ErrUnmounted    = errors.New("screen unmounted")
	ErrCancelled    = errors.New("cancelled")
)

// Validation errors are raised before any network call.
var (
	ErrNoFileSelected    = NewValidationError("Please select a file first.")
	ErrNoManagerSelected = NewValidationError("Please select a manager.")
	ErrNoOtherManagers   = NewValidationError("No other managers available to forward to.")
	ErrNoStaffSelected   = NewValidationError("Please select a staff member.")
	ErrInvalidSelection  = NewValidationError("Invalid selection.")
	ErrUserFieldsMissing = NewValidationError("Name and email are required.")
	ErrCredentials       = NewValidationError("Email and password are required.")
)

type ValidationError struct {
	msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) UserMessage() string { return e.msg }

type userMessenger interface {
	UserMessage() string
}

// UserMessage picks the text shown to the user: a validation message or the
// backend-provided message when there is one, the fallback otherwise.
func UserMessage(err error, fallback string) string {
	var m userMessenger
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}

	return fallback
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
