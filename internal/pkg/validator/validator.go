// Package validator wraps a shared go-playground validator instance.
package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the struct's `validate` tags and returns a field name to
// failed-tag map, or nil when everything passes. The map goes straight into
// the error envelope's details.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
