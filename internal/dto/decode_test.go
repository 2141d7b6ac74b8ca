package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransfer(t *testing.T) {
	t.Run("employee", func(t *testing.T) {
		body := `{"type":"employee","id":3000,"name":"Sarah","birthDate":"1995-11-23",
			"address":{"city":"Rehovot","street":"Herzl","building":7},"employer":"Motorola","salary":20000}`
		got, err := DecodeTransfer([]byte(body))
		require.NoError(t, err)
		e, ok := got.(*EmployeeDto)
		require.True(t, ok)
		assert.Equal(t, 3000, e.ID)
		assert.Equal(t, "Rehovot", e.Address.City)
		assert.Equal(t, 20000, e.Salary)
	})

	t.Run("child with mixed case type", func(t *testing.T) {
		got, err := DecodeTransfer([]byte(`{"type":"Child","id":2000,"kindergarten":"Shalom"}`))
		require.NoError(t, err)
		c, ok := got.(*ChildDto)
		require.True(t, ok)
		assert.Equal(t, TypeChild, c.Type)
		assert.Equal(t, "Shalom", c.Kindergarten)
	})

	t.Run("missing type is a person", func(t *testing.T) {
		got, err := DecodeTransfer([]byte(`{"id":1000,"name":"John"}`))
		require.NoError(t, err)
		p, ok := got.(*PersonDto)
		require.True(t, ok)
		assert.Equal(t, TypePerson, p.Type)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := DecodeTransfer([]byte(`{"type":"robot","id":1}`))
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeTransfer([]byte(`{"id":`))
		assert.Error(t, err)
	})
}
