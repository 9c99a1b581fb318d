package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide root logger. Components derive child loggers
// from it via WithComponent or WithTailer rather than logging through it
// directly.
var Logger zerolog.Logger

// Config describes where and how the exporter logs.
type Config struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string

	// Console switches from JSON lines to human-readable console output.
	Console bool

	// FilePath, when non-empty, duplicates every log line into this file
	// in addition to stdout, creating parent directories as needed. This
	// is the exporter's own rolling log, not a tailed trace log.
	FilePath string
}

// Init wires the package logger per cfg. The returned closer owns the log
// file handle when FilePath is set (nil otherwise); the caller closes it
// on shutdown.
func Init(cfg Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	var closer io.Closer
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for log file %s: %w", cfg.FilePath, err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// WithComponent derives a child logger tagged with a subsystem name
// (watcher, registry, main, ...).
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithTailer derives a child logger scoped to one tailer goroutine
// instance, so repeated opens of the same path are distinguishable across
// reopen cycles.
func WithTailer(file, instanceID string) zerolog.Logger {
	return Logger.With().Str("file", file).Str("tailer_id", instanceID).Logger()
}
