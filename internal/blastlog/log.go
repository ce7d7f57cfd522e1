// Package blastlog sets up process-wide structured logging: a JSON
// log/slog handler writing to the configured log file, plus a thin
// prefixed-logger constructor for components that want a tagged line
// instead of structured fields, matching the dual style visible across
// internal/escrow/jury_client.go (prefixed *log.Logger) and
// internal/events/pubsub_bus.go (slog) in the teacher repo.
package blastlog

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens (creating if necessary) the log file at path, installs a JSON
// slog handler at the given level as the process default, and returns the
// configured logger plus a closer the caller should defer.
func Setup(path, level string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewJSONHandler(io.MultiWriter(f, os.Stderr), &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, f.Close, nil
}

func parseLevel(level string) slog.Level {
	switch level {
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

// Tagged returns a prefixed *log.Logger for callers that want a plain
// tagged line instead of structured slog fields — the same shape
// internal/escrow/jury_client.go builds with log.New(os.Stdout, prefix,
// log.LstdFlags).
func Tagged(subsystem string) *log.Logger {
	return log.New(os.Stderr, "["+subsystem+"] ", log.LstdFlags)
}
