package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	var v Errors
	assert.NoError(t, v.Err())

	v.Add("name", "name is required")
	v.Add("price", "price must not be negative")

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed: name: name is required; price: price must not be negative", err.Error())

	var got Errors
	require.True(t, errors.As(err, &got))
	assert.Len(t, got, 2)
}
