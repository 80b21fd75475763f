package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

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
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test"})
	l.now = fixedClock

	l.WithField("path", "a.txt").WithComponent("scan").Info("found %d issues", 3)

	want := "2026-01-02T03:04:05.000 [INFO] test: found 3 issues {component=scan, path=a.txt}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below the level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestNop(t *testing.T) {
	n := Nop()
	n.WithComponent("scan").Error("should not appear")
	if !n.disabled {
		t.Error("Nop logger should be disabled")
	}
	if n.output != io.Discard {
		t.Error("Nop logger should write to io.Discard")
	}
}

func TestLogger_DerivedDoesNotAlterParent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	l.now = fixedClock
	child := l.WithField("k", "v")

	l.Info("parent")
	child.WithField("k", "w").Info("child")

	want := "2026-01-02T03:04:05.000 [INFO] parent\n" +
		"2026-01-02T03:04:05.000 [INFO] child {k=w}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if len(child.fields) != 1 || child.fields["k"] != "v" {
		t.Errorf("child fields = %v, want map[k:v]", child.fields)
	}
}
