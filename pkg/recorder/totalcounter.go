package recorder

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// TotalCounter records the cumulative-since-start token (the third of the
// three whitespace-separated tokens) of a multi-valued counter field.
type TotalCounter struct {
	TraceType string
	FieldName string
	Gauge     *prometheus.GaugeVec
}

// NewTotalCounter builds a TotalCounter recorder and its backing gauge vector.
func NewTotalCounter(traceType, fieldName, gaugeName, description string) *TotalCounter {
	return &TotalCounter{
		TraceType: traceType,
		FieldName: fieldName,
		Gauge:     newGaugeVec(gaugeName, description),
	}
}

func (c *TotalCounter) Record(event traceevent.Event, labels traceevent.Labels) error {
	traceType, ok := event.String("Type")
	if !ok {
		return fieldErrorf("Type", "missing Type field")
	}
	if traceType != c.TraceType {
		return nil
	}

	raw, ok := event.String(c.FieldName)
	if !ok {
		return fieldErrorf(c.FieldName, "missing %s field", c.FieldName)
	}

	_, _, cumulativeTotal, err := parseCounterTokens(raw)
	if err != nil {
		return fieldErrorf(c.FieldName, "%w", err)
	}

	c.Gauge.WithLabelValues(labels.Values()...).Set(cumulativeTotal)
	return nil
}

// Collectors returns the recorder's backing gauge vector.
func (c *TotalCounter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Gauge}
}
