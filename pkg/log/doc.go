/*
Package log configures the exporter's structured logging: zerolog writing
JSON lines (or console output) to stdout and, when configured, duplicated
into the exporter's own rolling log file.

# Usage

	import "github.com/fieldstone-labs/trace-exporter/pkg/log"

	closer, err := log.Init(log.Config{
		Level:    "info",
		FilePath: "logs/tracing.log",
	})
	if err != nil {
		// fatal startup error
	}
	defer closer.Close()

	logger := log.WithComponent("watcher")
	logger.Warn().Err(err).Msg("failed to list log directory")

	tailerLog := log.WithTailer("logs/trace.0.json", instanceID)
	tailerLog.Info().Msg("tailer started")
*/
package log
