package validation

import (
	"time"

	"mood-tracker/internal/config"
)

// Field names reported in task validation errors
const (
	FieldName     = "name"
	FieldDeadline = "deadline"
)

// TaskValidator provides validation for task input
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits and location
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskName validates a task name
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()
	tv.checkName(validationError, name)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ParseDeadline validates and parses a deadline
func (tv *TaskValidator) ParseDeadline(deadline string) (time.Time, error) {
	validationError := NewValidationError()
	parsed := tv.checkDeadline(validationError, deadline)

	if validationError.HasErrors() {
		return time.Time{}, validationError
	}
	return parsed, nil
}

// ValidateTask validates both inputs of an add and returns the cleaned name and parsed deadline.
// All field errors are collected before returning.
func (tv *TaskValidator) ValidateTask(name, deadline string) (string, time.Time, error) {
	validationError := NewValidationError()

	tv.checkName(validationError, name)
	parsed := tv.checkDeadline(validationError, deadline)

	if validationError.HasErrors() {
		return "", time.Time{}, validationError
	}
	return tv.validator.TrimAndValidateString(name), parsed, nil
}

func (tv *TaskValidator) checkName(ve *ValidationError, name string) {
	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		ve.AddRequiredError(FieldName)
		return
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		ve.AddInvalidLengthError(FieldName, trimmedName,
			tv.validator.getTaskNameMinLength(), tv.validator.getTaskNameMaxLength())
	}

	if tv.validator.HasControlCharacters(trimmedName) {
		ve.AddInvalidCharacterError(FieldName, trimmedName)
	}
}

func (tv *TaskValidator) checkDeadline(ve *ValidationError, deadline string) time.Time {
	if !tv.validator.IsNonEmptyString(deadline) {
		ve.AddRequiredError(FieldDeadline)
		return time.Time{}
	}

	parsed, err := tv.validator.ParseDeadline(deadline)
	if err != nil {
		ve.AddInvalidFormatError(FieldDeadline, deadline, "YYYY-MM-DDTHH:MM or RFC3339")
		return time.Time{}
	}
	return parsed
}
