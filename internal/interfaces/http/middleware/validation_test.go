package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inviteBody struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Email    string `json:"email" validate:"required,email"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()

	t.Run("emits one detail per failed field", func(t *testing.T) {
		err := v.Struct(inviteBody{UserID: "not-a-uuid", Email: "nope", Quantity: -1})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-123")
		require.NotNil(t, resp.Error)
		assert.False(t, resp.Success)
		assert.Equal(t, "req-123", resp.Error.RequestID)
		assert.Len(t, resp.Error.Details, 3)
	})

	t.Run("required fields get a specific message", func(t *testing.T) {
		err := v.Struct(inviteBody{Quantity: 1})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "")
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 2)
		for _, d := range resp.Error.Details {
			assert.Equal(t, "This field is required", d.Message)
		}
	})

	t.Run("non-validation errors produce no details", func(t *testing.T) {
		resp := FormatValidationErrors(assert.AnError, "")
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
	})
}
