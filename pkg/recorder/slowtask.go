package recorder

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// SlowTaskCounter increments whenever a SlowTask event's Duration (seconds,
// as a string) exceeds the configured millisecond threshold.
type SlowTaskCounter struct {
	ThresholdMS uint64
	Counter     *prometheus.CounterVec
}

// NewSlowTaskCounter builds a SlowTaskCounter for the given threshold in
// milliseconds.
func NewSlowTaskCounter(thresholdMS uint64) *SlowTaskCounter {
	return &SlowTaskCounter{
		ThresholdMS: thresholdMS,
		Counter: newCounterVec(
			fmt.Sprintf("process_slow_task_%d_ms", thresholdMS),
			fmt.Sprintf("Counter of slow tasks longer than %d ms", thresholdMS),
		),
	}
}

func (c *SlowTaskCounter) Record(event traceevent.Event, labels traceevent.Labels) error {
	traceType, ok := event.String("Type")
	if !ok {
		return fieldErrorf("Type", "missing Type field")
	}
	if traceType != "SlowTask" {
		return nil
	}

	raw, ok := event.String("Duration")
	if !ok {
		return fieldErrorf("Duration", "missing Duration field")
	}
	durationSeconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fieldErrorf("Duration", "invalid Duration field: %w", err)
	}

	if durationSeconds > float64(c.ThresholdMS)/1000.0 {
		c.Counter.WithLabelValues(labels.Values()...).Inc()
	}
	return nil
}

// Collectors returns the recorder's backing counter vector.
func (c *SlowTaskCounter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Counter}
}
