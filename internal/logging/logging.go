// Package logging configures the process-wide slog logger. The terminal is
// owned by the pager while it runs, so records only ever go to a file.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a text logger writing to path at the given level and
// returns a function that closes the file. An empty path discards all
// records.
func Setup(path string, level slog.Level) (func() error, error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "path", path, "level", level.String())
	return f.Close, nil
}
