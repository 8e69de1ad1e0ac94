package logging_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pendulum/internal/logging"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pendulum.log")

	logger, closer, err := logging.New(logging.Options{Level: "info", Path: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("session complete", "phase", "work")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "session complete") {
		t.Fatalf("log line missing from file: %q", string(raw))
	}
	if !strings.Contains(string(raw), "phase=work") {
		t.Fatalf("attribute missing from file: %q", string(raw))
	}
}

func TestNewWithoutPathDiscards(t *testing.T) {
	logger, closer, err := logging.New(logging.Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	// Must be safe to use and never enabled.
	logger.Info("dropped")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("discard logger reports itself enabled")
	}
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{level: "debug", debugOn: true, warnOn: true},
		{level: "info", debugOn: false, warnOn: true},
		{level: "warn", debugOn: false, warnOn: true},
		{level: "error", debugOn: false, warnOn: false},
		{level: "", debugOn: false, warnOn: true},
		{level: "bogus", debugOn: false, warnOn: true},
	}

	for _, tc := range tests {
		t.Run("level "+tc.level, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pendulum.log")
			logger, closer, err := logging.New(logging.Options{Level: tc.level, Path: path})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			defer closer.Close()

			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tc.debugOn {
				t.Fatalf("debug enabled = %v, want %v", got, tc.debugOn)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tc.warnOn {
				t.Fatalf("warn enabled = %v, want %v", got, tc.warnOn)
			}
		})
	}
}
