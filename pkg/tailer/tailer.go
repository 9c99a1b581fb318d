package tailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldstone-labs/trace-exporter/pkg/log"
	"github.com/fieldstone-labs/trace-exporter/pkg/metrics"
	"github.com/fieldstone-labs/trace-exporter/pkg/registry"
	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

const (
	eofRetryInterval   = 250 * time.Millisecond
	errorRetryInterval = 1 * time.Second
	readBufferSize     = 64 * 1024
)

// Tailer follows one trace.*.json file, decoding lines into trace events
// and dispatching them to a shared registry. Each Tailer owns its own
// file handle and read cursor; nothing about it is shared with any other
// tailer besides the registry pointer.
type Tailer struct {
	path     string
	registry *registry.Registry
	logger   zerolog.Logger
	base     string
}

// New builds a Tailer for path, dispatching decoded events to reg. Its log
// lines carry an instance id, and Run draws a fresh one for every open of
// the file, so repeated opens of the same path (after a reopen cycle) are
// distinguishable in logs.
func New(path string, reg *registry.Registry) *Tailer {
	instanceID := uuid.NewString()
	return &Tailer{
		path:     path,
		registry: reg,
		logger:   log.WithTailer(path, instanceID),
		base:     filepath.Base(path),
	}
}

// Run follows the file until ctx is cancelled, retrying forever on
// recoverable open/seek/read errors. It returns only when ctx is done.
func (t *Tailer) Run(ctx context.Context) {
	t.logger.Info().Msg("tailer started")
	for {
		if ctx.Err() != nil {
			return
		}
		t.logger = log.WithTailer(t.path, uuid.NewString())

		f, err := os.Open(t.path)
		if err != nil {
			t.logger.Warn().Err(err).Msg("failed to open trace log file, retrying")
			if !sleepOrDone(ctx, errorRetryInterval) {
				return
			}
			continue
		}

		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			t.logger.Warn().Err(err).Msg("failed to seek to end of trace log file, retrying")
			f.Close()
			if !sleepOrDone(ctx, errorRetryInterval) {
				return
			}
			continue
		}

		t.follow(ctx, f)
		f.Close()
	}
}

// follow reads newly appended lines from f until a read error occurs or
// ctx is cancelled, at which point it returns so Run can reopen (or stop).
// It buffers partial reads itself rather than relying on a line-oriented
// reader's internal buffer, so a line split across two Read calls is
// never handed to the JSON decoder until its terminator has been seen.
func (t *Tailer) follow(ctx context.Context, f *os.File) {
	var pending []byte
	buf := make([]byte, readBufferSize)

	for {
		if ctx.Err() != nil {
			return
		}

		n, err := f.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]
				t.handleLine(line)
			}
		}

		switch {
		case err == nil:
			continue
		case err == io.EOF:
			if !sleepOrDone(ctx, eofRetryInterval) {
				return
			}
		default:
			t.logger.Warn().Err(err).Msg("read error, reopening trace log file")
			sleepOrDone(ctx, errorRetryInterval)
			return
		}
	}
}

// handleLine decodes one trimmed line as a trace event and dispatches it
// to the registry, bumping the appropriate process counter.
func (t *Tailer) handleLine(raw []byte) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}

	var event traceevent.Event
	if err := json.Unmarshal(trimmed, &event); err != nil {
		metrics.ParseErrorsTotal.WithLabelValues(t.base).Inc()
		t.logger.Warn().Err(err).Str("line", string(trimmed)).Msg("failed to parse trace log line")
		return
	}

	if err := t.registry.Record(event); err != nil {
		metrics.RecordErrorsTotal.WithLabelValues(t.base).Inc()
		t.logger.Warn().Err(err).Msg("failed to record trace event")
		return
	}

	metrics.LinesProcessedTotal.WithLabelValues(t.base).Inc()
}

// sleepOrDone sleeps for d, returning false early (without having slept
// the full duration) if ctx is cancelled first.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
