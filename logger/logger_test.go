package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"time"`) {
		t.Errorf("expected timestamped warn message, got: %s", out)
	}
}

func TestInitWithOptionsLogFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	path := filepath.Join(t.TempDir(), "aifast.log")

	log, err := InitWithOptions(path, false)
	if err != nil {
		t.Fatalf("InitWithOptions() error = %v", err)
	}
	log.Info().Str("component", "test").Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Logger initialized") || !strings.Contains(string(data), "hello") {
		t.Errorf("log file contents = %s", data)
	}
}

func TestInitWithOptionsBadPath(t *testing.T) {
	_, err := InitWithOptions(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), false)
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
}
