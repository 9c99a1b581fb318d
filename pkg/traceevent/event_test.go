package traceevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	e := Event{"Type": "Simple", "Count": 42.0, "Machine": "1.2.3.4:4500"}

	v, ok := e.String("Type")
	assert.True(t, ok)
	assert.Equal(t, "Simple", v)

	_, ok = e.String("Count")
	assert.False(t, ok, "non-string field must not be reported as a string")

	_, ok = e.String("Missing")
	assert.False(t, ok)
}

func TestEventRequireString(t *testing.T) {
	e := Event{"Machine": "1.2.3.4:4500"}

	v, err := e.RequireString("Machine")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4:4500", v)

	_, err = e.RequireString("Roles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Roles")
}

func TestEventType(t *testing.T) {
	e := Event{"Type": "Histogram"}
	assert.Equal(t, "Histogram", e.Type())

	assert.Equal(t, "", Event{}.Type())
}
