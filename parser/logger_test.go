package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	// None of these should panic.
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	if _, ok := l.With("key", "value").(NopLogger); !ok {
		t.Error("With should return NopLogger")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler))

	l.Debug("debug msg", "ref", "#/a")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")
	l.With("doc", "api.yaml").Info("scoped")

	out := buf.String()
	for _, want := range []string{"debug msg", "ref=#/a", "info msg", "warn msg", "error msg", "doc=api.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	if NewSlogAdapter(nil).logger == nil {
		t.Error("nil logger should fall back to slog.Default()")
	}
}

func TestNewTextLogger(t *testing.T) {
	var quiet bytes.Buffer
	NewTextLogger(&quiet, false).Debug("hidden")
	if quiet.Len() != 0 {
		t.Errorf("debug should be filtered without verbose, got %q", quiet.String())
	}

	var loud bytes.Buffer
	NewTextLogger(&loud, true).Debug("shown")
	if !strings.Contains(loud.String(), "shown") {
		t.Errorf("debug should be written with verbose, got %q", loud.String())
	}
}
