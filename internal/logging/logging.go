// Package logging sets up the slog logger. The TUI owns the terminal, so
// records go to a file and never to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultFile is used when no log file is configured and there is no
// database path to sit next to.
const DefaultFile = "geodrill.log"

// Path picks the log file: the configured one, else geodrill.log in the
// database's directory, else the OS temp dir.
func Path(configured, dbPath string) string {
	if configured != "" {
		return configured
	}
	if dbPath != "" && dbPath != ":memory:" {
		return filepath.Join(filepath.Dir(dbPath), DefaultFile)
	}
	return filepath.Join(os.TempDir(), DefaultFile)
}

// Open creates a text logger appending to path. The returned closer
// releases the file.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// New builds a text logger on w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
