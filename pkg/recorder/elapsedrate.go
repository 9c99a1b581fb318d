package recorder

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// ElapsedRate records a field's value normalised by a sibling Elapsed
// field (value/elapsed), smoothed through a rolling window.
type ElapsedRate struct {
	TraceType string
	FieldName string
	Gauge     *prometheus.GaugeVec
	Smoother  *Smoother
}

// NewElapsedRate builds an ElapsedRate recorder and its backing gauge vector.
func NewElapsedRate(traceType, fieldName, gaugeName, description string) *ElapsedRate {
	return &ElapsedRate{
		TraceType: traceType,
		FieldName: fieldName,
		Gauge:     newGaugeVec(gaugeName, description),
		Smoother:  NewSmoother(),
	}
}

func (r *ElapsedRate) Record(event traceevent.Event, labels traceevent.Labels) error {
	traceType, ok := event.String("Type")
	if !ok {
		return fieldErrorf("Type", "missing Type field")
	}
	if traceType != r.TraceType {
		return nil
	}

	rawValue, ok := event.String(r.FieldName)
	if !ok {
		return fieldErrorf(r.FieldName, "missing %s field", r.FieldName)
	}
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return fieldErrorf(r.FieldName, "invalid %s field: %w", r.FieldName, err)
	}

	rawElapsed, ok := event.String("Elapsed")
	if !ok {
		return fieldErrorf("Elapsed", "missing Elapsed field")
	}
	elapsed, err := strconv.ParseFloat(rawElapsed, 64)
	if err != nil {
		return fieldErrorf("Elapsed", "invalid Elapsed field: %w", err)
	}

	sampleTime, err := eventTime(event)
	if err != nil {
		return err
	}

	mean := r.Smoother.Observe(labels.Key(), traceevent.Sample{Time: sampleTime, Value: value / elapsed})
	r.Gauge.WithLabelValues(labels.Values()...).Set(mean)
	return nil
}

// Collectors returns the recorder's backing gauge vector.
func (r *ElapsedRate) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.Gauge}
}
