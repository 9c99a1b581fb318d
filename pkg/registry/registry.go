// Package registry turns a parsed gauge configuration into a running set of
// recorders and dispatches decoded trace events to them. It owns the fixed
// auxiliary severity counters that exist regardless of configuration, and
// derives each event's label set from its Machine/Roles fields.
package registry

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/fieldstone-labs/trace-exporter/pkg/gaugeconfig"
	"github.com/fieldstone-labs/trace-exporter/pkg/log"
	"github.com/fieldstone-labs/trace-exporter/pkg/recorder"
	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

// fixedSeverities are the Severity values the registry always tracks,
// regardless of what the gauge configuration declares.
var fixedSeverities = []uint64{10, 20, 30, 40}

// Registry holds every configured and fixed recorder and dispatches each
// decoded trace event to all of them in order.
type Registry struct {
	mu        sync.RWMutex
	recorders []recorder.Recorder
	logger    zerolog.Logger
}

// New builds a Registry from parsed gauge definitions, adding the fixed
// severity counters after whatever the configuration declares (slow-task
// counters included).
func New(defs []gaugeconfig.Definition) (*Registry, error) {
	reg := &Registry{logger: log.WithComponent("registry")}

	for _, def := range defs {
		r, err := buildRecorder(def)
		if err != nil {
			return nil, fmt.Errorf("building recorder for gauge %q: %w", def.GaugeName, err)
		}
		reg.recorders = append(reg.recorders, r)
	}

	for _, severity := range fixedSeverities {
		reg.recorders = append(reg.recorders, recorder.NewSeverityCounter(severity))
	}

	return reg, nil
}

func buildRecorder(def gaugeconfig.Definition) (recorder.Recorder, error) {
	switch def.Kind {
	case gaugeconfig.Simple:
		return recorder.NewSimple(def.TraceType, def.FieldName, def.GaugeName, def.Description), nil
	case gaugeconfig.CounterTotal:
		return recorder.NewTotalCounter(def.TraceType, def.FieldName, def.GaugeName, def.Description), nil
	case gaugeconfig.CounterRate:
		return recorder.NewRateCounter(def.TraceType, def.FieldName, def.GaugeName, def.Description), nil
	case gaugeconfig.ElapsedRate:
		return recorder.NewElapsedRate(def.TraceType, def.FieldName, def.GaugeName, def.Description), nil
	case gaugeconfig.HistogramPercentile:
		return recorder.NewHistogramPercentile(def.Group, def.Op, def.Percentile, def.GaugeName, def.Description), nil
	case gaugeconfig.SlowTask:
		return recorder.NewSlowTaskCounter(def.ThresholdMS), nil
	default:
		return nil, fmt.Errorf("unrecognized gauge kind %v", def.Kind)
	}
}

// Record derives the event's label set from its Machine and Roles fields
// and dispatches it to every recorder, returning on the first error. A
// missing Machine field is itself an error since every recorder's gauge
// vector is keyed on it.
func (r *Registry) Record(event traceevent.Event) error {
	machine, ok := event.String("Machine")
	if !ok {
		return fmt.Errorf("event missing Machine field")
	}
	roles, _ := event.String("Roles")

	labels := traceevent.Labels{
		{Name: "machine", Value: machine},
		{Name: "roles", Value: roles},
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.recorders {
		if err := rec.Record(event, labels); err != nil {
			r.logger.Warn().Err(err).Str("machine", machine).Msg("recorder failed on event")
			return err
		}
	}
	return nil
}

// Len reports how many recorders the registry dispatches to, mostly useful
// for tests and startup logging.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recorders)
}

// Collectors flattens every recorder's backing instrument(s) for
// registration with a prometheus.Registerer. Callers register these
// exactly once at process startup; Registry itself never registers them,
// so repeated New() calls (as in tests) never collide on a shared
// registerer.
func (r *Registry) Collectors() []prometheus.Collector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var collectors []prometheus.Collector
	for _, rec := range r.recorders {
		collectors = append(collectors, rec.Collectors()...)
	}
	return collectors
}
