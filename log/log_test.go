package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func plainTextLogger(buf *bytes.Buffer, opts ...Option) Logger {
	base := []Option{
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"),
	}

	return Make(buf, append(base, opts...)...)
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	logger := plainTextLogger(&buf, WithLevel(LevelWarn))

	logger.Trace("trace message")
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()

	for _, absent := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(out, absent) {
			t.Errorf("expected %q to be filtered, output: %s", absent, out)
		}
	}

	for _, present := range []string{"warn message", "error message"} {
		if !strings.Contains(out, present) {
			t.Errorf("expected %q in output: %s", present, out)
		}
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := plainTextLogger(&buf, WithLevel(LevelTrace))

	logger.Trace("tracing")

	out := buf.String()
	if !strings.Contains(out, "TRACE") {
		t.Errorf("expected TRACE level name, got: %s", out)
	}

	if strings.Contains(out, "DEBUG-4") {
		t.Errorf("raw slog level leaked into output: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"))

	logger.Info("hello", slog.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "hello" {
		t.Errorf("expected msg %q, got %v", "hello", record["msg"])
	}

	if record["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", record["count"])
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Trace("a")
	logger.Debug("b")
	logger.Info("c")
	logger.Warn("d")
	logger.Error("e")

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("expected default level, got %v", got)
	}

	if got := logger.Format(); got != DefaultFormat {
		t.Errorf("expected default format, got %v", got)
	}

	if wrapped := logger.With(slog.String("k", "v")); wrapped.Logger != nil {
		t.Error("With on zero value should remain zero value")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := plainTextLogger(&buf).With(slog.String("component", "parser"))

	logger.Info("ready")

	if out := buf.String(); !strings.Contains(out, "component=parser") {
		t.Errorf("expected bound attribute in output: %s", out)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	logger := plainTextLogger(&buf)

	if logger.Level() != DefaultLevel {
		t.Fatalf("unexpected base level %v", logger.Level())
	}

	wrapped := logger.Wrap(WithLevel(LevelError))

	if wrapped.Level() != LevelError {
		t.Errorf("expected wrapped level error, got %v", wrapped.Level())
	}

	// The original logger keeps its configuration.
	if logger.Level() != DefaultLevel {
		t.Errorf("base logger level changed to %v", logger.Level())
	}

	wrapped.Warn("filtered")

	if strings.Contains(buf.String(), "filtered") {
		t.Errorf("wrapped logger did not filter: %s", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithTimeLayout("none"))

	logger.Info("colorful", slog.Bool("ok", true))

	out := buf.String()

	if !strings.Contains(out, "\033[") {
		t.Errorf("expected ANSI escapes in pretty output: %q", out)
	}

	if !strings.Contains(out, "colorful") {
		t.Errorf("expected message in output: %q", out)
	}

	if !strings.Contains(out, "true") {
		t.Errorf("expected attribute value in output: %q", out)
	}
}

func TestLogger_PrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithTimeLayout("none"))

	logger.Info("structured")

	out := buf.String()

	if !strings.HasPrefix(out, "{\n") {
		t.Errorf("expected multiline object, got: %q", out)
	}

	if !strings.Contains(out, "structured") {
		t.Errorf("expected message in output: %q", out)
	}
}
