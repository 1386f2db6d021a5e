package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("path decision",
		DecisionID("abc-123"),
		Decision("QUARANTINE"),
		Coherence(0.5),
		PathLength(3),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "INFO" || entry["msg"] != "path decision" {
		t.Errorf("entry = %v", entry)
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatal("fields missing")
	}
	if fields["decision"] != "QUARANTINE" {
		t.Errorf("decision field = %v", fields["decision"])
	}
	if fields["coherence"] != 0.5 {
		t.Errorf("coherence field = %v", fields["coherence"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("filtered entries written: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestWithChildLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(String("component", "router"))
	child.Info("hello")

	if !strings.Contains(buf.String(), `"component":"router"`) {
		t.Errorf("pre-set field missing: %s", buf.String())
	}

	// Parent unaffected
	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Errorf("parent logger picked up child fields: %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("boom"))
	if f.Key != "error" || f.Value != "boom" {
		t.Errorf("Error field = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) value = %v, want nil", f.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("goes nowhere")
	if child := logger.With(String("k", "v")); child == nil {
		t.Error("With returned nil")
	}
}
