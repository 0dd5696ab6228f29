package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"info", INFO},
		{"WARN", WARN},
		{"warn", WARN},
		{"ERROR", ERROR},
		{"error", ERROR},
		{"invalid", INFO}, // default to INFO
		{"", INFO},        // default to INFO
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLogLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// decodeLogLine is a test helper that parses a single JSON log line
func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	line := strings.TrimSpace(buf.String())
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", line, err)
	}
	return record
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(INFO, "cache", &buf)

	logger.Info("fetch complete", map[string]interface{}{
		"key":      "us-sports",
		"attempts": 2,
	})

	record := decodeLogLine(t, &buf)

	if record["message"] != "fetch complete" {
		t.Errorf("Expected message %q, got %v", "fetch complete", record["message"])
	}
	if record["component"] != "cache" {
		t.Errorf("Expected component %q, got %v", "cache", record["component"])
	}
	if record["key"] != "us-sports" {
		t.Errorf("Expected key field %q, got %v", "us-sports", record["key"])
	}
	if record["level"] != "info" {
		t.Errorf("Expected level %q, got %v", "info", record["level"])
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(WARN, "", &buf)

	logger.Debug("should not appear", nil)
	logger.Info("should not appear either", nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output below WARN, got %q", buf.String())
	}

	logger.Warn("visible", nil)
	if buf.Len() == 0 {
		t.Error("Expected WARN message to be written")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(INFO, "session", &buf).WithComponent("guide")

	logger.Info("tick", nil)

	line := buf.String()
	if !strings.Contains(line, "guide") {
		t.Errorf("Expected derived component in output, got %q", line)
	}
}
