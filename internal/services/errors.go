package services

import "errors"

// ValidationError is a recoverable, field-less user input failure: surfaced
// as an inline message, no mutation performed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a user input failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrNotFound signals an operation that targeted an id absent from the
	// collection.
	ErrNotFound = errors.New("application not found")

	// ErrConfirmationRequired gates destructive operations: declining leaves
	// state unchanged.
	ErrConfirmationRequired = errors.New("confirmation required")
)
