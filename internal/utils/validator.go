package utils

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"bloodbank/domain"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func InitValidator() {
	Validate = NewValidator()
}

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "blood_group", func(fl validator.FieldLevel) bool {
		return domain.IsBloodGroup(fl.Field().String())
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "units", func(fl validator.FieldLevel) bool {
		return HasTwoDecimals(fl.Field().Float())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validator: register " + tag + ": " + err.Error())
	}
}

// HasTwoDecimals reports whether f fits a decimal(_,2) column without rounding.
func HasTwoDecimals(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	cents := f * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
