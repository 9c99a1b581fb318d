package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LinesProcessedTotal counts successfully decoded and dispatched trace-log lines, by file.
	LinesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_exporter_lines_processed_total",
			Help: "Total number of trace log lines successfully decoded and recorded, by file",
		},
		[]string{"file"},
	)

	// ParseErrorsTotal counts lines that failed JSON decoding, by file.
	ParseErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_exporter_parse_errors_total",
			Help: "Total number of trace log lines that failed to parse as JSON, by file",
		},
		[]string{"file"},
	)

	// RecordErrorsTotal counts events that parsed but failed registry dispatch, by file.
	RecordErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_exporter_record_errors_total",
			Help: "Total number of decoded trace events that failed registry recording, by file",
		},
		[]string{"file"},
	)

	// ScrapeDurationSeconds tracks how long rendering the exposition body takes.
	ScrapeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trace_exporter_scrape_duration_seconds",
			Help:    "Time spent rendering the /metrics exposition body",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(LinesProcessedTotal)
	prometheus.MustRegister(ParseErrorsTotal)
	prometheus.MustRegister(RecordErrorsTotal)
	prometheus.MustRegister(ScrapeDurationSeconds)
}

// Handler returns the Prometheus HTTP handler, timed through
// ScrapeDurationSeconds so slow scrapes show up in the next scrape.
func Handler() http.Handler {
	inner := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		ScrapeDurationSeconds.Observe(time.Since(start).Seconds())
	})
}
