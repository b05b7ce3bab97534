package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(level)
	l.SetOutput(&buf)
	l.sink.now = func() time.Time { return time.Date(2025, 1, 1, 6, 7, 8, 9e6, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" Info ", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"loud", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	l, buf := fixedLogger(LevelDebug)
	l.Info("resolved %d bodies", 7)
	if got, want := buf.String(), "06:07:08.009 [INFO] resolved 7 bodies\n"; got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	l, buf := fixedLogger(LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("wrote %d lines, want 2: %q", n, buf.String())
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled does not follow the level")
	}
}

func TestLogger_WithSharesSink(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)
	child := l.With("engine").With("frame")
	child.Warn("latitude %v", 91.0)
	if !strings.Contains(buf.String(), "[WARN] engine.frame: latitude 91") {
		t.Errorf("missing component prefix: %q", buf.String())
	}

	l.SetLevel(LevelError)
	buf.Reset()
	child.Warn("suppressed")
	if buf.Len() != 0 {
		t.Errorf("child ignored parent level: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger reports enabled")
	}
}
