package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homelead/territory-api/internal/usecase"
)

func TestIsValidZipCode(t *testing.T) {
	valid := []string{"00000", "90210", "30301"}
	for _, zip := range valid {
		assert.True(t, usecase.IsValidZipCode(zip), zip)
	}

	invalid := []string{"", "1234", "123456", "9021a", "90210-1234", " 90210"}
	for _, zip := range invalid {
		assert.False(t, usecase.IsValidZipCode(zip), zip)
	}
}

func TestValidateCreateLeadInputPhoneFormats(t *testing.T) {
	base := usecase.CreateLeadInput{Name: "Jane", ZipCode: "90210"}

	for _, phone := range []string{"5551234567", "(555) 123-4567", "1-555-123-4567"} {
		input := base
		input.Phone = phone
		assert.Empty(t, usecase.ValidateCreateLeadInput(input), phone)
	}

	for _, phone := range []string{"123", "555-1234", "123456789012"} {
		input := base
		input.Phone = phone
		assert.NotEmpty(t, usecase.ValidateCreateLeadInput(input), phone)
	}
}

func TestValidateCreateLeadInputNameLength(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{Name: string(long), ZipCode: "90210"})
	assert.NotEmpty(t, errs)
}
