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

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in an underlying component.
var ErrInternal = errors.New("internal error")

// ErrInvalidTransition indicates a lifecycle action was attempted from a state that does not allow it.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrInsufficientEntitlement indicates the chosen payment method has not enough balance.
var ErrInsufficientEntitlement = errors.New("insufficient entitlement")

// ErrSchedulingConflict indicates an access request overlaps another live request for the same service.
var ErrSchedulingConflict = errors.New("scheduling conflict")

// ErrMissingConfiguration indicates a plan or service lacks configuration required by the action (e.g. a billable product).
var ErrMissingConfiguration = errors.New("missing configuration")

// ErrResourceUnavailable indicates a desk, bed or floor cannot be reserved.
var ErrResourceUnavailable = errors.New("resource unavailable")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is keeps matching sentinels through the wrapper.
func (e *AppError) Unwrap() error {
	return e.Err
}
