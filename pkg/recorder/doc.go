/*
Package recorder implements the seven binding variants between trace event
fields and Prometheus instruments:

	Simple               - numeric field -> gauge, smoothed
	TotalCounter         - third token of a multi-valued counter -> gauge
	RateCounter          - first token of a multi-valued counter -> gauge, smoothed
	ElapsedRate          - value/Elapsed -> gauge, smoothed
	HistogramPercentile  - pre-aggregated LessThan* buckets -> interpolated percentile gauge
	SeverityCounter      - Severity field match -> counter
	SlowTaskCounter      - SlowTask Duration above threshold -> counter

Every variant implements Recorder.Record(event, labels): a type mismatch
(the event's Type, or for histograms its Type/Group/Op/Unit, doesn't match
what this recorder is configured for) returns success with no emission. A
match with a missing or malformed required field returns a *FieldError
naming the offending field. Otherwise the recorder writes to its
instrument.

Simple, RateCounter, and ElapsedRate route their computed value through a
Smoother before writing it, trading a little responsiveness for a steadier
exposed value (see smoother.go). HistogramPercentile's interpolation
algorithm (histogram.go) assumes samples within the bucket containing the
target rank are exponentially distributed, anchored so the bucket's
cumulative count matches its own CDF.
*/
package recorder
