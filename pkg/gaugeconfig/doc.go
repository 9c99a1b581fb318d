/*
Package gaugeconfig parses the exporter's declarative gauge-binding TOML
file into a flat list of Definitions.

The file is organised as named, repeatable sections:

	[[simple_gauge]]
	trace_type = "StorageMetrics"
	field_name = "Version"
	gauge_name = "ss_version"
	description = "Storage server version"

	[[histogram_percentile_gauge]]
	group = "StorageServer"
	op = "Read"
	percentiles = [0.5, 0.99]
	gauge_name = "ss_read_latency_seconds"
	description = "Read latency"

simple_gauge, counter_total_gauge, counter_rate_gauge, and
elapsed_rate_gauge share the same four string fields. histogram_percentile_
gauge is expanded here: an entry with N percentiles produces N Definitions,
one per percentile, with gauge_name/description suffixed when N > 1 (see
percentileSuffix/percentileDisplay).

An empty config file is valid and yields no Definitions. A file with no
recognized section, a malformed entry, or an out-of-range percentile is an
error.
*/
package gaugeconfig
