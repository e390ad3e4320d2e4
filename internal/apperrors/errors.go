package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrConflict indicates a uniqueness violation (duplicate department name,
// duplicate team member id within a department, duplicate token).
var ErrConflict = errors.New("resource already exists")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the resolved capability is insufficient for the
// requested action or department.
var ErrForbidden = errors.New("forbidden")

// ErrStorage indicates an I/O failure in the storage gateway.
var ErrStorage = errors.New("storage unavailable")

// AppError carries an internal status code and an underlying cause.
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

// NewAppError wraps an unexpected storage or infrastructure failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: fmt.Errorf("%w: %w", ErrStorage, err)}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}
