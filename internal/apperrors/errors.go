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

// ErrUnauthorized indicates that the backend rejected the session credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNetwork indicates that a backend request failed or returned a non-2xx status.
var ErrNetwork = errors.New("backend request failed")

// ErrBusinessRule indicates an operation that the wizard rules do not allow in the current state.
var ErrBusinessRule = errors.New("business rule violation")

// ErrStepOutOfOrder indicates a step payload that does not belong to the wizard's current step.
var ErrStepOutOfOrder = errors.New("step out of order")

// ErrActionInFlight indicates that the same action is already running for the wizard.
var ErrActionInFlight = errors.New("action already in progress")

// ErrWizardClosed indicates that the wizard session was discarded.
var ErrWizardClosed = errors.New("wizard session closed")

// ErrSuperseded indicates a debounced call replaced by a newer one.
var ErrSuperseded = errors.New("superseded by a newer request")

// ErrReferenceUnavailable indicates that assets or transaction rules could not be loaded.
var ErrReferenceUnavailable = errors.New("reference data unavailable")

// AppError carries an HTTP-ish code next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error that matches ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewNetworkError returns an error that matches ErrNetwork and keeps the status code.
func NewNetworkError(status int, message string) error {
	return &AppError{Code: status, Message: message, Err: ErrNetwork}
}
