package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested entity id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyInProgress is returned when a second engine run is started
	// while one is still in flight.
	ErrAlreadyInProgress = errors.New("operation already in progress")

	// ErrInvalidSnapshot is returned when a backup document is missing its
	// data section or carries an unrecognized version.
	ErrInvalidSnapshot = errors.New("invalid snapshot format")

	// ErrPayloadTooLarge is returned before any write when an upload exceeds
	// the object size ceiling.
	ErrPayloadTooLarge = errors.New("payload too large")

	ErrUnsupportedMedia = errors.New("unsupported media type")

	ErrUnknownEntity = errors.New("unknown entity type")
)

// ValidationError carries a human-readable reason for a rejected record:
// a missing required field, a violated unique constraint, or the sale
// dual-foreign-key rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
