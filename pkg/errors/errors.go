package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Conflict errors raised while applying a trait unit
	ErrAbsenceViolation  ErrorCode = "ABSENCE_VIOLATION"
	ErrPresenceViolation ErrorCode = "PRESENCE_VIOLATION"

	// Trait unit errors
	ErrUnitInvalid  ErrorCode = "UNIT_INVALID"
	ErrKindNotFound ErrorCode = "KIND_NOT_FOUND"

	// Object model errors
	ErrMethodNotFound ErrorCode = "METHOD_NOT_FOUND"
	ErrClassInvalid   ErrorCode = "CLASS_INVALID"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"
)

// TraitError represents a structured error with code and details
type TraitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TraitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TraitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TraitError) Is(target error) bool {
	var targetErr *TraitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TraitError with the given code and message
func New(code ErrorCode, message string) *TraitError {
	return &TraitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TraitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TraitError {
	return &TraitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TraitError
func Wrap(err error, code ErrorCode, message string) *TraitError {
	if err == nil {
		return nil
	}
	return &TraitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TraitError {
	if err == nil {
		return nil
	}
	return &TraitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TraitError) WithDetail(key string, value interface{}) *TraitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TraitError) WithDetails(details map[string]interface{}) *TraitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var traitErr *TraitError
	if errors.As(err, &traitErr) {
		return traitErr.Code == code
	}
	return false
}

// IsConflict reports whether an error is either conflict violation.
// Conflicts are configuration errors: the caller fixes composition order
// or behavior-map contents rather than retrying.
func IsConflict(err error) bool {
	return IsErrorCode(err, ErrAbsenceViolation) || IsErrorCode(err, ErrPresenceViolation)
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TraitError
func GetErrorCode(err error) ErrorCode {
	var traitErr *TraitError
	if errors.As(err, &traitErr) {
		return traitErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TraitError
func GetErrorDetails(err error) map[string]interface{} {
	var traitErr *TraitError
	if errors.As(err, &traitErr) {
		return traitErr.Details
	}
	return nil
}
