package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// ErrInvalidInput indicates malformed settlement parameters or order data.
// It wraps ErrValidation so callers matching on either sentinel see it.
var ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrValidation)

// ErrNoEligibleOrders is returned when a withdrawal request would contain no orders.
var ErrNoEligibleOrders = errors.New("no eligible orders to withdraw")

// ErrRequestNotFound indicates an unknown withdrawal request id.
var ErrRequestNotFound = fmt.Errorf("%w: withdrawal request", ErrNotFound)

// ErrRequestNotPending indicates an approve/reject on a request that already reached a terminal state.
var ErrRequestNotPending = errors.New("withdrawal request is not pending")

// ErrUnknownOrderID indicates a registry transition that references a nonexistent order.
var ErrUnknownOrderID = fmt.Errorf("%w: order", ErrNotFound)

// ErrInvalidTransition indicates a withdrawal status change the state machine does not allow.
var ErrInvalidTransition = errors.New("invalid withdrawal status transition")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
