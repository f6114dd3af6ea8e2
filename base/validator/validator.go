package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// msisdnPattern matches international phone numbers without the leading
// plus sign, e.g. 250781234567
var msisdnPattern = regexp.MustCompile(`^[1-9][0-9]{9,13}$`)

// IsValidMsisdn reports whether a mobile-money account handle is a
// plausible MSISDN
func IsValidMsisdn(msisdn string) bool {
	return msisdnPattern.MatchString(msisdn)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
