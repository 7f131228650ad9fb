package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"+21623290065", true},
		{"21623290065", true},
		{"+216 23 290 065", true},
		{" user@example.com ", true},
		{"user@", false},
		{"hello", false},
		{"+0123", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsIdentifier(tt.in), tt.in)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "+21623290065", NormalizeIdentifier(" +216 23 290 065 "))
	assert.Equal(t, "+21623290065", NormalizeIdentifier("+216-23-290-065"))
	assert.Equal(t, "+21623290065", NormalizeIdentifier("+216 (23) 290.065"))
	assert.Equal(t, "user.name@example.com", NormalizeIdentifier(" user.name@example.com "))
}

func TestRegisterGinValidator(t *testing.T) {
	RegisterGinValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type body struct {
		Identifier string `json:"identifier" binding:"required,identifier"`
	}

	require.NoError(t, v.Struct(body{Identifier: "+21623290065"}))

	err := v.Struct(body{Identifier: "nope"})
	var verr validator.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "identifier", verr[0].Field())
	assert.Equal(t, "identifier", verr[0].Tag())
}
