package recorder

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// SeverityCounter increments whenever an event's Severity field parses to
// the configured severity level. Unlike the per-trace-type recorders, it
// matches every event — Severity is a field every trace log line carries.
type SeverityCounter struct {
	Severity uint64
	Counter  *prometheus.CounterVec
}

// NewSeverityCounter builds a SeverityCounter for the given severity level.
func NewSeverityCounter(severity uint64) *SeverityCounter {
	return &SeverityCounter{
		Severity: severity,
		Counter: newCounterVec(
			fmt.Sprintf("process_sev%d_counter", severity),
			fmt.Sprintf("Counter of severity %d trace events", severity),
		),
	}
}

func (c *SeverityCounter) Record(event traceevent.Event, labels traceevent.Labels) error {
	raw, ok := event.String("Severity")
	if !ok {
		return fieldErrorf("Severity", "missing Severity field")
	}
	severity, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fieldErrorf("Severity", "invalid Severity field: %w", err)
	}

	if severity == c.Severity {
		c.Counter.WithLabelValues(labels.Values()...).Inc()
	}
	return nil
}

// Collectors returns the recorder's backing counter vector.
func (c *SeverityCounter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Counter}
}
