package order

import "errors"

var (
	ErrMissingData   = errors.New("missing data")
	ErrOrderNotFound = errors.New("order not found")
	ErrDuplicateID   = errors.New("order with this id already exists")
)

const (
	msgMissingItems    = "Missing data."
	msgMissingCustomer = "Missing data: Email, name, street, postal code or city is missing."
)

// ValidationError carries the client-facing message for a rejected payload.
// It unwraps to ErrMissingData so callers can classify without matching text.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingData
}
