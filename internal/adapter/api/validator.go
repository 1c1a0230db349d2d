package api

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	localPhonePattern = regexp.MustCompile(`^[6-9]\d{8}$`)
	smsCodePattern    = regexp.MustCompile(`^\d{6}$`)
)

// Validator plugs go-playground/validator into echo.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Spanish mobile and landline numbers without the country code
	v.RegisterValidation("localphone", func(fl validator.FieldLevel) bool {
		return localPhonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("smscode", func(fl validator.FieldLevel) bool {
		return smsCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
