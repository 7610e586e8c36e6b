// Package logging sets up the process-wide slog logger: a text handler over
// stderr plus an optional append-only log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup builds the logger. When path is non-empty the file (and its parent
// directories) are created and log lines go to both stderr and the file;
// a file that cannot be opened degrades to stderr-only rather than failing
// startup. debug lowers the level to Debug.
func Setup(path string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = io.MultiWriter(os.Stderr, f)
			}
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Tests use it to keep
// defect logging quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
