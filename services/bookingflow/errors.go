// File: services/bookingflow/errors.go
package bookingflow

import (
	"errors"
	"fmt"
)

// ErrDraftNotFound is returned when a draft has expired, was never created,
// or belongs to another user.
var ErrDraftNotFound = errors.New("booking draft not found")

// ValidationError reports a precondition failure on a named draft field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ContractError reports an upstream response that violates the API contract,
// such as a price quote issued for a different vendor than requested.
type ContractError struct {
	Code    string
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
