package errors

import (
	"errors"
	"fmt"
)

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewIndexOutOfRangeError reports a positional access outside [0, length)
func NewIndexOutOfRangeError(index, length int) *AppError {
	return &AppError{
		Type:    ErrorTypeIndexOutOfRange,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Code:    "INDEX_OUT_OF_RANGE",
		Context: map[string]interface{}{
			"index":  index,
			"length": length,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUpstreamError wraps a failed call to a third-party service
func NewUpstreamError(service string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: fmt.Sprintf("%s request failed", service),
		Code:    "UPSTREAM_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"service": service,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidInput, ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeIndexOutOfRange:
			return "That task no longer exists."
		case ErrorTypeDatabase:
			return "A storage error occurred. Please try again."
		case ErrorTypeUpstream:
			return "An external service is unavailable right now."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidInput, ErrorTypeIndexOutOfRange, ErrorTypeNotFound:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
