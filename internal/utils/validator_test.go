package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloodGroupValidation(t *testing.T) {
	v := NewValidator()

	type form struct {
		BloodGroup string `json:"blood_group" validate:"required,blood_group"`
	}

	for _, g := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		assert.NoError(t, v.Struct(form{BloodGroup: g}), g)
	}
	for _, g := range []string{"", "C+", "a+", "AB", "O"} {
		assert.Error(t, v.Struct(form{BloodGroup: g}), g)
	}
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	v := NewValidator()

	type form struct {
		PatientName string `json:"patient_name" validate:"required"`
	}

	err := v.Struct(form{})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "patient_name")
	}
}

func TestUsernameValidation(t *testing.T) {
	v := NewValidator()

	type form struct {
		Username string `json:"username" validate:"username"`
	}

	assert.NoError(t, v.Struct(form{Username: "john_doe"}))
	assert.NoError(t, v.Struct(form{Username: "mike.wilson+1"}))
	assert.Error(t, v.Struct(form{Username: "john doe"}))
	assert.Error(t, v.Struct(form{Username: "drop;table"}))
}

func TestUnitsValidation(t *testing.T) {
	v := NewValidator()

	type form struct {
		Units float64 `json:"units" validate:"units"`
	}

	for _, u := range []float64{0, 1, 2.5, 0.29, 0.01, 99.99, 25} {
		assert.NoError(t, v.Struct(form{Units: u}), "%v", u)
	}
	for _, u := range []float64{0.004, 1.005, 0.001, 12.345} {
		err := v.Struct(form{Units: u})
		if assert.Error(t, err, "%v", u) {
			assert.Contains(t, err.Error(), "units")
		}
	}
}

func TestNewValidatorRegistersCustomTags(t *testing.T) {
	assert.NotPanics(t, func() { NewValidator() })
}
