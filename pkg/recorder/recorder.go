// Package recorder implements the binding layer between decoded trace
// events and Prometheus instruments: one Recorder variant per gauge_config
// section (slow-task counters included), plus the fixed severity counters
// the registry always carries.
package recorder

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// Recorder is the single capability every gauge/counter binding exposes:
// given a decoded event and the label set the registry built for it, either
// write to the underlying instrument or return success with no emission.
//
// A Recorder returns an error when a field it needs is missing or
// malformed: a field it matches on (Type, or for histograms Group/Op/Unit)
// when that field is absent, or a field it requires once the event has
// matched. SeverityCounter matches no trace type and requires Severity on
// every event. A type mismatch is not an error — recorders are free to
// ignore events they do not handle.
type Recorder interface {
	Record(event traceevent.Event, labels traceevent.Labels) error

	// Collectors returns the prometheus instruments this recorder writes
	// to, so the registry can register them with the process's registerer
	// exactly once at startup. Construction deliberately never registers
	// these itself — recorder constructors run freely in tests without
	// colliding on the default registerer.
	Collectors() []prometheus.Collector
}

// FieldError names the trace event field that caused a recorder to fail,
// so tailer logs can point at exactly what was wrong with the line.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErrorf(field, format string, args ...any) error {
	return &FieldError{Field: field, Err: fmt.Errorf(format, args...)}
}
