// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pincodeTestStruct struct {
	Pincode string `validate:"required,pincode"`
}

func TestValidatePincode(t *testing.T) {
	valid := []string{"110001", "682001", "999999"}
	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&pincodeTestStruct{Pincode: p}), p)
	}

	invalid := []string{"", "12345", "1234567", "012345", "11000a", "11 001"}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&pincodeTestStruct{Pincode: p}), p)
	}
}

type emailTestStruct struct {
	Email string `validate:"required,email"`
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&emailTestStruct{Email: "not-an-email"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "email", errs[0].Tag)
	assert.Equal(t, "Invalid email format", errs[0].Message)
}
