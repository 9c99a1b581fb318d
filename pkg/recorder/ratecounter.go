package recorder

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// RateCounter records the instantaneous-rate token (the first of the three
// whitespace-separated tokens) of a multi-valued counter field, smoothed
// through a rolling window.
type RateCounter struct {
	TraceType string
	FieldName string
	Gauge     *prometheus.GaugeVec
	Smoother  *Smoother
}

// NewRateCounter builds a RateCounter recorder and its backing gauge vector.
func NewRateCounter(traceType, fieldName, gaugeName, description string) *RateCounter {
	return &RateCounter{
		TraceType: traceType,
		FieldName: fieldName,
		Gauge:     newGaugeVec(gaugeName, description),
		Smoother:  NewSmoother(),
	}
}

func (c *RateCounter) Record(event traceevent.Event, labels traceevent.Labels) error {
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
	instantaneous, _, _, err := parseCounterTokens(raw)
	if err != nil {
		return fieldErrorf(c.FieldName, "%w", err)
	}

	sampleTime, err := eventTime(event)
	if err != nil {
		return err
	}

	mean := c.Smoother.Observe(labels.Key(), traceevent.Sample{Time: sampleTime, Value: instantaneous})
	c.Gauge.WithLabelValues(labels.Values()...).Set(mean)
	return nil
}

// Collectors returns the recorder's backing gauge vector.
func (c *RateCounter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Gauge}
}
