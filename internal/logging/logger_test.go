package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"Warn", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"ERROR", LevelError, true},
		{"unknown", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v,%v, want %v,%v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test: "} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected DEBUG and INFO to be filtered out, got: %s", output)
	}
	if !strings.Contains(output, "[WARN]") {
		t.Error("expected WARN in output")
	}
	if logger.Enabled(LevelInfo) {
		t.Error("Enabled(LevelInfo) = true, want false")
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.Info("formatted %s %d", "test", 42)

	if !strings.Contains(buf.String(), "formatted test 42") {
		t.Errorf("expected formatted message, got: %s", buf.String())
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.WithFields(map[string]any{
		"view": "v1",
		"line": 3,
	}).WithComponent("engine").Info("test")

	if !strings.Contains(buf.String(), "{component=engine, line=3, view=v1}") {
		t.Errorf("expected sorted fields, got: %s", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	_ = logger.WithField("key", "value")
	logger.Info("plain")

	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger gained a field: %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("dropped")

	if logger.Enabled(LevelError) {
		t.Error("Nop logger should be disabled")
	}
	if logger.WithComponent("x").Enabled(LevelError) {
		t.Error("derived Nop logger should be disabled")
	}
}
