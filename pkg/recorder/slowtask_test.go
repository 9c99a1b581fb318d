package recorder

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

func TestSlowTaskCounterIncrementsAboveThreshold(t *testing.T) {
	c := NewSlowTaskCounter(100)
	labels := traceevent.Labels{{Name: "machine", Value: "test"}, {Name: "roles", Value: ""}}

	event := traceevent.Event{"Type": "SlowTask", "Duration": "0.150"}
	require.NoError(t, c.Record(event, labels))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Counter.WithLabelValues(labels.Values()...)))
}

func TestSlowTaskCounterSkipsBelowThreshold(t *testing.T) {
	c := NewSlowTaskCounter(100)
	labels := traceevent.Labels{{Name: "machine", Value: "test"}, {Name: "roles", Value: ""}}

	event := traceevent.Event{"Type": "SlowTask", "Duration": "0.050"}
	require.NoError(t, c.Record(event, labels))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Counter.WithLabelValues(labels.Values()...)))
}

func TestSlowTaskCounterSkipsNonSlowTaskEvents(t *testing.T) {
	c := NewSlowTaskCounter(100)
	labels := traceevent.Labels{{Name: "machine", Value: "test"}, {Name: "roles", Value: ""}}

	event := traceevent.Event{"Type": "Other", "Duration": "1.0"}
	require.NoError(t, c.Record(event, labels))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Counter.WithLabelValues(labels.Values()...)))
}

func TestSlowTaskCounterMissingTypeErrors(t *testing.T) {
	c := NewSlowTaskCounter(100)
	labels := traceevent.Labels{{Name: "machine", Value: "test"}, {Name: "roles", Value: ""}}

	err := c.Record(traceevent.Event{"Duration": "0.150"}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}
