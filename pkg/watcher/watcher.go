package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldstone-labs/trace-exporter/pkg/log"
	"github.com/fieldstone-labs/trace-exporter/pkg/registry"
	"github.com/fieldstone-labs/trace-exporter/pkg/tailer"
)

// tracePattern matches the database's rotated trace log file names,
// trace.<n>.json.
var tracePattern = regexp.MustCompile(`^trace\..+\.json$`)

// Watcher polls a directory for trace log files and starts a tailer for
// each one it discovers.
type Watcher struct {
	dir          string
	pollInterval time.Duration
	registry     *registry.Registry
	logger       zerolog.Logger

	tailed map[string]struct{}
}

// New builds a Watcher over dir, polling every pollInterval and handing
// every discovered file to reg via a new tailer.
func New(dir string, pollInterval time.Duration, reg *registry.Registry) *Watcher {
	return &Watcher{
		dir:          dir,
		pollInterval: pollInterval,
		registry:     reg,
		logger:       log.WithComponent("watcher"),
		tailed:       make(map[string]struct{}),
	}
}

// Run ensures the log directory exists, then scans it on every tick of
// pollInterval until ctx is cancelled. A scan failure is logged and
// retried on the next tick rather than aborting the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", w.dir, err)
	}

	w.scan(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan lists the directory once, spawning a tailer for every regular
// trace.*.json file not already in the tailed set.
func (w *Watcher) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn().Err(err).Msg("failed to list log directory")
		return
	}

	for _, entry := range entries {
		if entry.Type().IsDir() || !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !tracePattern.MatchString(name) {
			continue
		}

		path := filepath.Join(w.dir, name)
		if _, already := w.tailed[path]; already {
			continue
		}
		w.tailed[path] = struct{}{}

		w.logger.Info().Str("file", path).Msg("discovered trace log file, starting tailer")
		t := tailer.New(path, w.registry)
		go t.Run(ctx)
	}
}

// TailedCount reports how many distinct files the watcher has ever
// started a tailer for, mostly useful for tests.
func (w *Watcher) TailedCount() int {
	return len(w.tailed)
}
