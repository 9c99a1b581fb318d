package tailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/fieldstone-labs/trace-exporter/pkg/metrics"
	"github.com/fieldstone-labs/trace-exporter/pkg/registry"
)

func TestTailerFollowsAppendedLinesFromEOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.tailer-append-test.json")
	require.NoError(t, os.WriteFile(path, []byte("this line predates the tailer and must not be read\n"), 0o644))

	reg, err := registry.New(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tl := New(path, reg)
	go tl.Run(ctx)

	// Give the tailer a moment to open and seek to EOF before appending.
	time.Sleep(50 * time.Millisecond)

	before := testutil.ToFloat64(metrics.LinesProcessedTotal.WithLabelValues(filepath.Base(path)))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"Machine":"h1","Severity":"30"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.LinesProcessedTotal.WithLabelValues(filepath.Base(path))) > before
	}, 2*time.Second, 10*time.Millisecond, "expected lines-processed counter to advance for the appended line")
}

func TestTailerCountsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.tailer-parse-error-test.json")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	reg, err := registry.New(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tl := New(path, reg)
	go tl.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	before := testutil.ToFloat64(metrics.ParseErrorsTotal.WithLabelValues(filepath.Base(path)))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not valid json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.ParseErrorsTotal.WithLabelValues(filepath.Base(path))) > before
	}, 2*time.Second, 10*time.Millisecond, "expected parse-errors counter to advance for the malformed line")
}
