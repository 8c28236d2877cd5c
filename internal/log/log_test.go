package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestInitWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn")
	defer InitWriter(&bytes.Buffer{}, "info")

	Info("hidden message")
	Warn("visible message", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "component=test") {
		t.Errorf("expected warn line with attributes, got %q", out)
	}
}

func TestWith_AttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info")
	defer InitWriter(&bytes.Buffer{}, "info")

	With("component", "director").Info("transition started")

	out := buf.String()
	if !strings.Contains(out, "component=director") || !strings.Contains(out, "transition started") {
		t.Errorf("expected attributes on the derived logger, got %q", out)
	}
}
