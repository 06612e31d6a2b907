// Package logger builds the process-wide slog logger. Everything logs as
// JSON lines to stdout; the runtime (or a log shipper) takes it from there.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/roomtrack/roomtrack/internal/config"
)

// New builds the logger from the logging config. Every record carries a
// "service" attribute so multiple RoomTrack processes can share one sink.
func New(cfg config.Logging) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With("service", cfg.Service)
}

// parseLevel maps the configured level name onto slog levels. Unknown
// names fall back to info rather than failing startup.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
