package recorder

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// Simple records a single numeric field, smoothed through a rolling
// window, whenever the event's Type matches the configured trace type.
type Simple struct {
	TraceType string
	FieldName string
	Gauge     *prometheus.GaugeVec
	Smoother  *Smoother
}

// NewSimple builds a Simple recorder and its backing gauge vector.
func NewSimple(traceType, fieldName, gaugeName, description string) *Simple {
	return &Simple{
		TraceType: traceType,
		FieldName: fieldName,
		Gauge:     newGaugeVec(gaugeName, description),
		Smoother:  NewSmoother(),
	}
}

func (s *Simple) Record(event traceevent.Event, labels traceevent.Labels) error {
	traceType, ok := event.String("Type")
	if !ok {
		return fieldErrorf("Type", "missing Type field")
	}
	if traceType != s.TraceType {
		return nil
	}

	raw, ok := event.String(s.FieldName)
	if !ok {
		return fieldErrorf(s.FieldName, "missing %s field", s.FieldName)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fieldErrorf(s.FieldName, "invalid %s field: %w", s.FieldName, err)
	}

	sampleTime, err := eventTime(event)
	if err != nil {
		return err
	}

	mean := s.Smoother.Observe(labels.Key(), traceevent.Sample{Time: sampleTime, Value: value})
	s.Gauge.WithLabelValues(labels.Values()...).Set(mean)
	return nil
}

// Collectors returns the recorder's backing gauge vector.
func (s *Simple) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.Gauge}
}

func eventTime(event traceevent.Event) (time.Time, error) {
	raw, ok := event.String("Time")
	if !ok {
		return time.Time{}, fieldErrorf("Time", "missing Time field")
	}
	parsed, err := traceevent.ParseTime(raw)
	if err != nil {
		return time.Time{}, fieldErrorf("Time", "invalid Time field: %w", err)
	}
	return parsed, nil
}
