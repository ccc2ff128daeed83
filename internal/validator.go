package internal

import "github.com/go-playground/validator/v10"

var Validator = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// error type names, see CheckTypeName
	if err := validate.RegisterValidation("typename", func(field validator.FieldLevel) bool {
		return CheckTypeName(field.Field().String()) == ""
	}); err != nil {
		panic("BUG: " + err.Error())
	}
	return validate
}
