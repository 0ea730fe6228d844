package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closer := Setup(path, true)
	logger.Debug("opened project", "path", "/src/Hello")
	slog.Info("via default")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "opened project")
	assert.Contains(t, string(data), "path=/src/Hello")
	assert.Contains(t, string(data), "via default")
}

func TestSetup_InfoLevelDropsDebug(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closer := Setup(path, false)
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
}

func TestSetup_UnwritablePath(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger, closer := Setup(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"), false)
	logger.Info("discarded")
	assert.NoError(t, closer.Close())
}
