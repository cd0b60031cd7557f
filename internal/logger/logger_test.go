package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/deppfellow/trip-booking/internal/config"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("trip", "Alps").Msg("listed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (debug must be filtered): %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"service":     config.ServiceName,
		"environment": "production",
		"trip":        "Alps",
		"message":     "listed",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %q", key, entry[key], want)
		}
	}
}

func TestNewLogger_DevelopmentIsConsole(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "local"

	var buf bytes.Buffer
	logger := newLogger(cfg, nil, &buf)
	logger.Info().Msg("hello")

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("expected console output, got JSON %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output %q does not contain message", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	if got := GetPgxTraceLogLevel(zerolog.DebugLevel); got != int(tracelog.LogLevelDebug) {
		t.Errorf("debug = %d", got)
	}
	if got := GetPgxTraceLogLevel(zerolog.FatalLevel); got != int(tracelog.LogLevelError) {
		t.Errorf("fatal = %d", got)
	}
	if got := GetPgxTraceLogLevel(zerolog.Disabled); got != int(tracelog.LogLevelNone) {
		t.Errorf("disabled = %d", got)
	}
}

func TestLoggerService_DisabledWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	if ls.GetApplication() != nil {
		t.Error("expected no New Relic application without a license key")
	}
	ls.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Error("nil service must report no application")
	}
}
