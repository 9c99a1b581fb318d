package recorder

import "github.com/prometheus/client_golang/prometheus"

// labelNames is the fixed label dimension every recorder's instrument is
// registered with. The registry always builds a two-element label set per
// event — machine, and roles (empty string when the event carries none) —
// so every GaugeVec/CounterVec shares the same dimensions regardless of
// whether a given event happens to carry Roles.
var labelNames = []string{"machine", "roles"}

func newGaugeVec(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, labelNames)
}

func newCounterVec(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labelNames)
}
