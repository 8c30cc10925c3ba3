package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `validate:"required,min=2,max=50"`
	Position string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sampleRequest{Name: "Ada", Position: "Engineer"}))
	})

	t.Run("violations are reported per field", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{Name: "A"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Contains(t, fields, "Name")
		assert.Contains(t, fields, "Position")
		assert.Contains(t, fields["Name"], "at least 2")
	})

	t.Run("helpers ignore unrelated errors", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsValidationError(err))
		assert.Nil(t, GetValidationFields(err))
	})
}
