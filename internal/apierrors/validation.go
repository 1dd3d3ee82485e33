package apierrors

import (
	"fmt"
	"strings"

	voicecallProcessor "livekit-henryk/internal/voicecall/processor"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom tags used by request structs.
// Call it once with gin's validator engine: binding.Validator.Engine().
func RegisterValidators(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", engine)
	}
	return v.RegisterValidation("e164", func(fl validator.FieldLevel) bool {
		return voicecallProcessor.ValidPhoneNumber(fl.Field().String())
	})
}

// ValidationError builds a 400 APIError from validator errors
func ValidationError(validationErrs validator.ValidationErrors) *APIError {
	code := CodeInvalidInput
	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == "e164" {
			code = CodeInvalidPhoneNumber
		}
	}
	return BadRequest(code, buildValidationMessage(validationErrs))
}

// buildValidationMessage creates a user-friendly message from validation errors
func buildValidationMessage(validationErrs validator.ValidationErrors) string {
	if len(validationErrs) == 0 {
		return "Invalid request"
	}

	if len(validationErrs) == 1 {
		return getValidationMessage(validationErrs[0])
	}

	var messages []string
	for _, fieldErr := range validationErrs {
		messages = append(messages, getValidationMessage(fieldErr))
	}
	return "Validation failed: " + strings.Join(messages, "; ")
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "e164":
		return fmt.Sprintf("%s must be in E.164 format, e.g. +14155551234", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fieldErr.Tag())
	}
}
