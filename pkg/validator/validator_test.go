package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Format      string `json:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "not-an-email", DateOfBirth: "01/02/2000", Format: "doc"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "date_of_birth must match the format 2006-01-02", errs["date_of_birth"])
	assert.Equal(t, "format must be one of: csv xlsx pdf", errs["format"])
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sample{Email: "a@b.co", DateOfBirth: "1990-05-01"}))
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
