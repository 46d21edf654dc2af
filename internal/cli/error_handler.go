package cli

import (
	"fmt"

	"mood-tracker/internal/errors"
	"mood-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// CommandError is a user-facing failure message that keeps the underlying
// cause reachable through errors.As.
type CommandError struct {
	msg string
	err error
}

func (e *CommandError) Error() string { return e.msg }

func (e *CommandError) Unwrap() error { return e.err }

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return &CommandError{msg: fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()), err: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &CommandError{msg: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err: err}
	}

	return &CommandError{msg: fmt.Sprintf("failed to %s: %v", operation, err), err: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if _, ok := err.(*CommandError); ok {
		return err
	}

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// IsInputError reports whether err was caused by what the user typed
func (eh *ErrorHandler) IsInputError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsUpstreamError reports whether err came from a third-party service
func (eh *ErrorHandler) IsUpstreamError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeUpstream)
}

// Hint returns a follow-up line for the terminal, or "" when there is none.
func (eh *ErrorHandler) Hint(err error) string {
	switch {
	case eh.IsInputError(err):
		return "Run 'mt --help' for usage."
	case eh.IsUpstreamError(err):
		return "Check your network connection and API credentials."
	default:
		return ""
	}
}

// ExitCode is 2 for input errors and 1 for everything else.
func (eh *ErrorHandler) ExitCode(err error) int {
	if eh.IsInputError(err) {
		return 2
	}
	return 1
}
