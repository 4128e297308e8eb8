package seatmap

import "errors"

// ErrorKind classifies every expected validation failure the seating core
// can produce. Hosts branch on the kind, not the message.
type ErrorKind string

const (
	KindInvalidEvent     ErrorKind = "invalid_event"
	KindNoSeats          ErrorKind = "no_seats"
	KindEmptySelection   ErrorKind = "empty_selection"
	KindInvalidSelection ErrorKind = "invalid_selection"
	KindInvalidType      ErrorKind = "invalid_type"
	KindInvalidID        ErrorKind = "invalid_id"
	KindOutOfBounds      ErrorKind = "out_of_bounds"
	KindTypeMismatch     ErrorKind = "type_mismatch"
	KindSeatBooked       ErrorKind = "seat_booked"
	KindInvalidMap       ErrorKind = "invalid_map"
	KindEmptyMap         ErrorKind = "empty_map"
	KindEmptyTypes       ErrorKind = "empty_types"
)

// ValidationError is the tagged failure type every exported seating
// operation returns for expected bad input. It is a plain value, never a
// panic.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a tagged validation failure.
func NewValidationError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// AsValidationError unwraps err into a ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Retryable reports whether the failure is expected under normal concurrent
// usage and worth retrying with a refreshed seat map. Everything else
// signals a caller bug or tampering.
func (e *ValidationError) Retryable() bool {
	return e.Kind == KindSeatBooked || e.Kind == KindTypeMismatch
}
