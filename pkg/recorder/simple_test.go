package recorder

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

func TestSimpleRecordsMatchingType(t *testing.T) {
	r := NewSimple("StorageMetrics", "Version", "ss_version", "Storage server version")
	labels := traceevent.Labels{{Name: "machine", Value: "1.2.3.4:4500"}, {Name: "roles", Value: ""}}

	event := traceevent.Event{"Type": "StorageMetrics", "Version": "42", "Time": "1000.0"}
	require.NoError(t, r.Record(event, labels))

	assert.Equal(t, float64(42), testutil.ToFloat64(r.Gauge.WithLabelValues(labels.Values()...)))
}

func TestSimpleIgnoresMismatchedType(t *testing.T) {
	r := NewSimple("StorageMetrics", "Version", "ss_version", "")
	labels := traceevent.Labels{{Name: "machine", Value: "m"}, {Name: "roles", Value: ""}}

	event := traceevent.Event{"Type": "Other", "Version": "42"}
	assert.NoError(t, r.Record(event, labels))
}

func TestSimpleMissingTypeErrors(t *testing.T) {
	r := NewSimple("StorageMetrics", "Version", "ss_version", "")
	labels := traceevent.Labels{{Name: "machine", Value: "m"}, {Name: "roles", Value: ""}}

	err := r.Record(traceevent.Event{}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}

func TestSimpleMissingFieldErrors(t *testing.T) {
	r := NewSimple("StorageMetrics", "Version", "ss_version", "")
	labels := traceevent.Labels{{Name: "machine", Value: "m"}, {Name: "roles", Value: ""}}

	err := r.Record(traceevent.Event{"Type": "StorageMetrics", "Time": "1.0"}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Version")
}

func TestSimpleMissingTimeErrors(t *testing.T) {
	r := NewSimple("StorageMetrics", "Version", "ss_version", "")
	labels := traceevent.Labels{{Name: "machine", Value: "m"}, {Name: "roles", Value: ""}}

	err := r.Record(traceevent.Event{"Type": "StorageMetrics", "Version": "1.0"}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Time")
}
