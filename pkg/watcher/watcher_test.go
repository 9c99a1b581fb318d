package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstone-labs/trace-exporter/pkg/registry"
)

func TestRunCreatesMissingLogDirectory(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "nested", "logs")

	reg, err := registry.New(nil)
	require.NoError(t, err)

	w := New(dir, 50*time.Millisecond, reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx)
	require.Eventually(t, func() bool {
		info, err := os.Stat(dir)
		return err == nil && info.IsDir()
	}, time.Second, 10*time.Millisecond)
}

func TestScanSpawnsOneTailerPerMatchingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trace.0.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trace.1.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), nil, 0o644))

	reg, err := registry.New(nil)
	require.NoError(t, err)

	w := New(dir, time.Hour, reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w.scan(ctx)
	assert.Equal(t, 2, w.TailedCount())
}

func TestScanNeverReSpawnsAKnownFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trace.0.json"), nil, 0o644))

	reg, err := registry.New(nil)
	require.NoError(t, err)

	w := New(dir, time.Hour, reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w.scan(ctx)
	w.scan(ctx)
	assert.Equal(t, 1, w.TailedCount())
}

func TestScanToleratesUnreadableDirectory(t *testing.T) {
	reg, err := registry.New(nil)
	require.NoError(t, err)

	w := New(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour, reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NotPanics(t, func() { w.scan(ctx) })
	assert.Equal(t, 0, w.TailedCount())
}
