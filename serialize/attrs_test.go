package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAttrsEmptyIsNil(t *testing.T) {
	attrs, err := ValidateAttrs(nil)
	require.NoError(t, err)
	assert.Nil(t, attrs)
}

func TestValidateAttrsRejectsUnsupportedValue(t *testing.T) {
	_, err := ValidateAttrs(map[string]interface{}{"fn": func() {}})
	assert.Error(t, err)
}

func TestValidateAttrsPassesJSONSafeValues(t *testing.T) {
	attrs, err := ValidateAttrs(map[string]interface{}{"axis": 2.0, "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, attrs["axis"])
	assert.Equal(t, "x", attrs["name"])
}
