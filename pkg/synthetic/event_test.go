package synthetic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePopulatesCoreFields(t *testing.T) {
	raw, err := NewEvent("StorageMetrics").Detail("Version", "123").Line()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "StorageMetrics", decoded["Type"])
	assert.Equal(t, "127.0.0.1:4000", decoded["Machine"])
	assert.Equal(t, "123", decoded["Version"])
	assert.NotEmpty(t, decoded["Time"])
}

func TestDetailFieldsAreChainable(t *testing.T) {
	raw, err := NewEvent("Trace").Detail("Severity", "10").Detail("Roles", "storage").Line()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "10", decoded["Severity"])
	assert.Equal(t, "storage", decoded["Roles"])
}
