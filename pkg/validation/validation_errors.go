package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors groups validator failures by the reported field name.
// ok is false when err is not a validator.ValidationErrors.
func FieldErrors(err error) (fields map[string][]string, ok bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fields = make(map[string][]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()], formatSingleError(e))
	}
	return fields, true
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "This field is required."

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has at least %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)

	case "email":
		return "Enter a valid email address."

	case "url":
		return "Enter a valid URL."

	case "valid_phone":
		return "Enter a valid phone number."

	case "no_emoji":
		return "Emoji and special symbols are not allowed."

	case "gtfield":
		return fmt.Sprintf("Must be after %s.", param)

	default:
		return fmt.Sprintf("Invalid value (%s).", e.Tag())
	}
}
