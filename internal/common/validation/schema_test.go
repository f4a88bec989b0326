package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "required": ["email"],
  "properties": {
    "email": {"type": "string", "minLength": 3},
    "age": {"type": "integer", "minimum": 0}
  },
  "additionalProperties": false
}`

func TestValidateJSON(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		res, err := ValidateJSON([]byte(`{"email":"a@b.io","age":3}`), personSchema)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("invalid document", func(t *testing.T) {
		res, err := ValidateJSON([]byte(`{"age":-1,"extra":true}`), personSchema)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.True(t, res.HasErrors("age"))
		assert.Len(t, res.GetErrorMessages(), len(res.Errors))
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ValidateJSON([]byte(`{`), personSchema)
		assert.Error(t, err)
	})
}
