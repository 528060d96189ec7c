package apperrors

import "errors"

// ErrNotFound means the referenced document does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition means a status change was rejected by the workflow rules.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidationError is a client input problem the caller must correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
