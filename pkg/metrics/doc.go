/*
Package metrics provides the trace exporter's own process-level Prometheus
metrics: how many trace log lines it has processed, how many of those
failed to parse or failed to record, and how long each exposition render
took. These are distinct from the
domain-specific gauges and counters produced by pkg/recorder and
pkg/registry from trace event contents — this package instruments the
exporter itself.

# Usage

	metrics.LinesProcessedTotal.WithLabelValues(filepath.Base(path)).Inc()
	metrics.ParseErrorsTotal.WithLabelValues(filepath.Base(path)).Inc()
	metrics.RecordErrorsTotal.WithLabelValues(filepath.Base(path)).Inc()

	http.Handle("/metrics", metrics.Handler())
*/
package metrics
