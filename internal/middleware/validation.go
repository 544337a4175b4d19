package middleware

import (
	"github.com/go-playground/validator/v10"

	"github.com/mfuentes/escolar/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct checks a value against its validate tags and returns the
// failures as per-field errors, nil when the value is valid.
func ValidateStruct(obj interface{}) dto.FieldErrors {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs := dto.FieldErrors{}
		errs.Add("_", err.Error())
		return errs
	}

	errs := dto.FieldErrors{}
	for _, e := range validationErrs {
		errs.Add(e.Field(), formatValidationError(e))
	}
	return errs
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
