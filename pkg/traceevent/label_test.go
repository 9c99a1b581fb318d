package traceevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelsKeyOrderIndependent(t *testing.T) {
	a := Labels{{Name: "machine", Value: "1.2.3.4"}, {Name: "roles", Value: "storage"}}
	b := Labels{{Name: "roles", Value: "storage"}, {Name: "machine", Value: "1.2.3.4"}}

	assert.Equal(t, a.Key(), b.Key())
}

func TestLabelsKeyDistinguishesValues(t *testing.T) {
	a := Labels{{Name: "machine", Value: "1.2.3.4"}}
	b := Labels{{Name: "machine", Value: "5.6.7.8"}}

	assert.NotEqual(t, a.Key(), b.Key())
}

func TestLabelsNamesAndValues(t *testing.T) {
	l := Labels{{Name: "machine", Value: "1.2.3.4"}, {Name: "roles", Value: "storage"}}

	assert.Equal(t, []string{"machine", "roles"}, l.Names())
	assert.Equal(t, []string{"1.2.3.4", "storage"}, l.Values())
}
