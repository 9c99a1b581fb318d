/*
Package api implements the exporter's HTTP exposition surface: a Prometheus
scrape endpoint and a liveness probe.

Routes:

	GET /metrics  -> Prometheus text exposition format (pkg/metrics.Handler)
	GET /health   -> 200, empty body
	everything else -> 404

The server follows the usual graceful-shutdown shape: ListenAndServe
returns the underlying *http.Server alongside an error channel so the
caller can select on shutdown signals and call Shutdown(ctx) to drain
in-flight requests.
*/
package api
