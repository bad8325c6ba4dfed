// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"dbg", LevelDebug},
		{"info", LevelInfo},
		{"  Info  ", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERR", LevelError},

		// empty and unknown fall back to the default
		{"", LevelWarn},
		{"garbage", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input, LevelWarn); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKVPairs(t *testing.T) {
	tests := []struct {
		name     string
		input    []any
		expected []string
	}{
		{"empty input", []any{}, []string{}},
		{"single pair", []any{"key", "value"}, []string{"key=value"}},
		{"odd number of elements", []any{"k1", "v1", "k2"}, []string{"k1=v1", "k2=(missing)"}},
		{"mixed types", []any{"count", 42, "ok", true}, []string{"count=42", "ok=true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kvPairs(tt.input...)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d pairs, got %d", len(tt.expected), len(got))
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("pair %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, LevelDebug)

	scoped := base.With("component", "dispatcher")
	scoped.Info("window full", "in_flight", 50)
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "INF window full component=dispatcher in_flight=50") {
		t.Errorf("scoped line missing fields: %s", lines[0])
	}
	if strings.Contains(lines[1], "component=") {
		t.Errorf("base logger must not inherit scope: %s", lines[1])
	}
}

func TestLogger_SetLevelSharedWithChildren(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, LevelError)
	child := base.With("component", "probe")

	child.Debug("hidden")
	base.SetLevel(LevelDebug)
	child.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged before level change: %s", out)
	}
	if !strings.Contains(out, "DBG visible component=probe") {
		t.Errorf("child should follow the shared level: %s", out)
	}
}

func TestLogger_Err(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelError)

	logger.Err(nil, "phase", "open")
	if buf.Len() != 0 {
		t.Fatalf("nil error should not log anything, got: %s", buf.String())
	}

	logger.Err(errors.New("boom"), "phase", "open")
	out := buf.String()
	if !strings.Contains(out, "ERR error=boom phase=open") {
		t.Errorf("unexpected error line: %s", out)
	}
	if strings.Contains(out, "  ") {
		t.Errorf("output should not contain double spaces: %q", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		lvl      Level
		expected []string
		absent   []string
	}{
		{LevelDebug, []string{"DBG", "INF", "WRN", "ERR"}, nil},
		{LevelInfo, []string{"INF", "WRN", "ERR"}, []string{"DBG"}},
		{LevelWarn, []string{"WRN", "ERR"}, []string{"DBG", "INF"}},
		{LevelError, []string{"ERR"}, []string{"DBG", "INF", "WRN"}},
	}

	for _, tt := range tests {
		t.Run(tt.lvl.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.lvl)

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Err(errors.New("e"))

			out := buf.String()
			for _, tag := range tt.expected {
				if !strings.Contains(out, tag) {
					t.Errorf("expected %s at level %v: %s", tag, tt.lvl, out)
				}
			}
			for _, tag := range tt.absent {
				if strings.Contains(out, tag) {
					t.Errorf("unexpected %s at level %v: %s", tag, tt.lvl, out)
				}
			}
		})
	}
}

func TestLogger_ThreadSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			scoped := logger.With("worker", id)
			for j := 0; j < 100; j++ {
				scoped.Info("probe done", "n", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1000 {
		t.Errorf("expected 1000 log lines, got %d", len(lines))
	}
}

func TestNew_ReadsEnv(t *testing.T) {
	os.Setenv(EnvLevel, "debug")
	defer os.Unsetenv(EnvLevel)

	impl := New().(*kvLogger)
	if impl.core.lvl != LevelDebug {
		t.Errorf("expected debug level from env, got %v", impl.core.lvl)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Err(errors.New("ignored"))
	logger.Debug("ignored")
}
