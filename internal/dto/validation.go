package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^\w{3,30}$`)

// RegisterValidations installs the custom binding rules used by the request
// DTOs onto the given validator engine. Called once at startup against gin's
// binding validator.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}
