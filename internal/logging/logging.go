package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	Path  string // Log file location; empty discards everything
}

// New constructs a slog logger appending to the options' file. With no
// path set it returns a discard logger, so callers can log
// unconditionally. A TUI must never log to the terminal while running.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return slog.New(slog.DiscardHandler), noopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: parseLevel(opts.Level)})
	return slog.New(handler), file, nil
}

// DefaultPath places the log file under the user cache directory.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "pendulum", "pendulum.log"), nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
