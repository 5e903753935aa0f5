package tilekit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ResolveLogLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ResolveLogLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ResolveLogLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestCacheLogging(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger("info", &buf)
	if err != nil {
		t.Fatal(err)
	}
	SetLogger(l)
	defer SetLogger(nil)

	c, _ := newFakeCacheKeepLogger(fstest.MapFS{"a.png": {Data: []byte("a")}})
	if _, err := c.Add("a", "a.png"); err != nil {
		t.Fatal(err)
	}
	c.Get("b")
	c.Unload("b")

	out := buf.String()
	for _, want := range []string{
		`level=INFO msg="asset loaded" kind=fake key=a`,
		`level=ERROR msg="missing asset" kind=fake key=b`,
		`level=WARN msg="tried to unload missing asset" kind=fake key=b`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger("error", &buf)
	if err != nil {
		t.Fatal(err)
	}
	SetLogger(l)
	defer SetLogger(nil)

	Logger().Info("hidden")
	Logger().Error("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestSetLoggerNilDiscards(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger should never be nil")
	}
	Logger().Error("discarded")
}
