package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDuplicatesIntoLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracing.log")

	closer, err := Init(Config{Level: "info", FilePath: path})
	require.NoError(t, err)
	require.NotNil(t, closer)

	testLogger := WithComponent("testcomp")
	testLogger.Info().Msg("hello from the test")
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"component":"testcomp"`)
	assert.Contains(t, string(contents), "hello from the test")
}

func TestInitWithoutFilePathReturnsNilCloser(t *testing.T) {
	closer, err := Init(Config{Level: "warn"})
	require.NoError(t, err)
	assert.Nil(t, closer)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestWithTailerTagsFileAndInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracing.log")

	closer, err := Init(Config{Level: "debug", FilePath: path})
	require.NoError(t, err)

	tailerLogger := WithTailer("logs/trace.0.json", "abc123")
	tailerLogger.Info().Msg("tailer started")
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"file":"logs/trace.0.json"`)
	assert.Contains(t, string(contents), `"tailer_id":"abc123"`)
}
