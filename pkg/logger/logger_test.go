package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/soweego-go/soweego/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err := io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestNew_TextFormat(t *testing.T) {
	cfg := &config.LogConfig{Level: "info", Format: "text", Destination: "stdout"}

	output := capture(t, func() {
		New(cfg, "").Info("test message", "key", "value")
	})

	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=INFO")
}

func TestNew_JSONFormat(t *testing.T) {
	cfg := &config.LogConfig{Level: "info", Format: "json", Destination: "stdout"}

	output := capture(t, func() {
		New(cfg, "").Info("test message", "key", "value")
	})

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &logEntry))

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Contains(t, logEntry, "time")
}

func TestNew_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		logFunc       func(*slog.Logger)
		shouldContain string
		shouldLog     bool
	}{
		{
			name:          "info level shows info messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     true,
		},
		{
			name:          "info level hides debug messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     false,
		},
		{
			name:          "debug level shows debug messages",
			configLevel:   "debug",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     true,
		},
		{
			name:          "warn level hides info messages",
			configLevel:   "warn",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LogConfig{Level: tt.configLevel, Format: "text", Destination: "stdout"}
			output := capture(t, func() {
				tt.logFunc(New(cfg, ""))
			})

			if tt.shouldLog {
				assert.Contains(t, output, tt.shouldContain)
			} else {
				assert.NotContains(t, output, tt.shouldContain)
			}
		})
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	cfg := &config.LogConfig{Level: "invalid", Format: "text", Destination: "stdout"}

	output := capture(t, func() {
		l := New(cfg, "")
		l.Debug("debug message")
		l.Info("info message")
	})

	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestNew_FileDestination(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{Level: "info", Format: "json", Destination: "file"}

	New(cfg, dir).Info("to file")

	data, err := os.ReadFile(dir + "/soweego.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew_CaseInsensitiveFormat(t *testing.T) {
	formats := []string{"JSON", "Json", "json", "TEXT", "Text", "text"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			cfg := &config.LogConfig{Level: "info", Format: format, Destination: "stdout"}
			assert.NotNil(t, New(cfg, ""))
		})
	}
}
