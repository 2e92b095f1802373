package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/soweego-go/soweego/pkg/config"
)

// New creates a new slog.Logger based on the provided configuration.
// It respects the logging level, format and destination from the config.
// Invalid values default to Info level, tint format and stderr.
func New(cfg *config.LogConfig, logDir string) *slog.Logger {
	level := ParseLevel(cfg.Level)
	writer := destination(cfg.Destination, logDir)

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	case "text":
		handler = slog.NewTextHandler(writer, opts)
	case "tint", "":
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	default:
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	}

	return slog.New(handler)
}

// destination resolves the configured log sink. "file" writes (and creates,
// if needed) soweego.log inside logDir; anything else falls back to stderr.
func destination(dest, logDir string) io.Writer {
	switch strings.ToLower(dest) {
	case "stdout":
		return os.Stdout
	case "file":
		if logDir == "" {
			return os.Stderr
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return os.Stderr
		}
		f, err := os.OpenFile(
			filepath.Join(logDir, "soweego.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			return os.Stderr
		}
		return f
	default:
		return os.Stderr
	}
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
