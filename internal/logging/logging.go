// Package logging configures the process-wide slog logger. The terminal UI
// owns stdout, so records go to a file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultPath is where debug logs are written.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "lazydroid-debug.log")
}

// Setup installs a text logger writing to path and returns a closer for the
// file. When the file cannot be opened logging is discarded.
func Setup(path string, verbose bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644); err == nil {
		w, closer = f, f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
