package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a record was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeFormat indicates an unparseable value (e.g. a clock time string).
	// Callers are expected to recover, typically by falling back to a default.
	ErrorTypeFormat ErrorType = "FORMAT"

	// ErrorTypeNoCandidates indicates an empty hospital candidate list
	ErrorTypeNoCandidates ErrorType = "NO_CANDIDATES"

	// ErrorTypeIllegalState indicates a wizard transition attempted from the
	// wrong step. This is a caller bug, not a user-recoverable condition.
	ErrorTypeIllegalState ErrorType = "ILLEGAL_STATE"

	// ErrorTypeDuplicateID indicates an id collision on record append
	ErrorTypeDuplicateID ErrorType = "DUPLICATE_ID"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// TypeOf returns the error type of err, or ErrorTypeInternal for plain errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewFormatError creates a new format error
func NewFormatError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
	}
}

// NewNoCandidatesError creates a new no-candidates error
func NewNoCandidatesError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNoCandidates,
		Message: message,
	}
}

// NewIllegalStateError creates a new illegal state error
func NewIllegalStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeIllegalState,
		Message: message,
	}
}

// NewDuplicateIDError creates a new duplicate id error
func NewDuplicateIDError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateID,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
