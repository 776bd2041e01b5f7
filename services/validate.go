package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the wire-level field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateInput checks the struct's validate tags and converts any
// violations into an itemized validation error.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errs.NewInternalErrorWithCause("input validation failed", err)
	}

	fields := make(map[string]string, len(violations))
	for _, violation := range violations {
		switch violation.Tag() {
		case "required", "min":
			fields[violation.Field()] = "required"
		case "oneof":
			fields[violation.Field()] = "must be one of: " + violation.Param()
		case "url":
			fields[violation.Field()] = "must be a valid URL"
		case "email":
			fields[violation.Field()] = "must be a valid email address"
		default:
			fields[violation.Field()] = "invalid value"
		}
	}
	return errs.NewValidationError(fields)
}

// requireFields builds an itemized error for create paths where the
// listed fields must be present and non-empty.
func requireFields(fields map[string]bool) error {
	missing := map[string]string{}
	for name, present := range fields {
		if !present {
			missing[name] = "required"
		}
	}
	if len(missing) > 0 {
		return errs.NewValidationError(missing)
	}
	return nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func provided(s *string) bool {
	return s != nil && *s != ""
}
