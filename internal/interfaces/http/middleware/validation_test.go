package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorEngine(t *testing.T) *validator.Validate {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestArticleCodeValidation(t *testing.T) {
	v := validatorEngine(t)

	valid := []string{
		"KB100L28MON",
		"KE80",
		"KB120L35",
		"kb100l28mon", // case-insensitive
		"KE80NOR",
	}
	for _, code := range valid {
		assert.NoError(t, v.Var(code, "articlecode"), "expected %q to be valid", code)
	}

	invalid := []string{
		"",
		"K100",         // single-letter prefix
		"KB",           // no grammage
		"100L28",       // missing paper type
		"KB9",          // grammage needs at least two digits
		"KB100L28MON!", // punctuation
	}
	for _, code := range invalid {
		assert.Error(t, v.Var(code, "articlecode"), "expected %q to be invalid", code)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := validatorEngine(t)

	// gin's validator engine reads the binding tag
	type ingestRequest struct {
		Text  string `json:"text" binding:"required"`
		Email string `json:"email_from" binding:"omitempty,email"`
	}

	err := v.Struct(ingestRequest{Email: "not-an-email"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	// Field names come from JSON tags
	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "text")
	assert.Contains(t, fields, "email_from")
}

func TestGetValidationMessages(t *testing.T) {
	v := validatorEngine(t)

	type request struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code" binding:"omitempty,articlecode"`
	}

	err := v.Struct(request{Code: "not a code"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 2)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["name"])
	assert.Equal(t, "Invalid article code format", messages["code"])
}
