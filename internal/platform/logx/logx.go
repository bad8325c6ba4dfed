// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// EnvLevel is the environment variable consulted by New.
const EnvLevel = "USERENUM_LOG_LEVEL"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// kvLogger shares its level and sink with every logger derived through With.
type kvLogger struct {
	core  *core
	scope []string
}

type core struct {
	mu  sync.Mutex
	lvl Level
	lg  *log.Logger
}

// New builds a stderr logger whose level comes from USERENUM_LOG_LEVEL (default warn).
func New() Logger {
	return NewWithWriter(os.Stderr, ParseLevel(os.Getenv(EnvLevel), LevelWarn))
}

// NewWithLevel creates a stderr logger with a fixed level.
func NewWithLevel(lvl Level) Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewWithWriter creates a logger that writes to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	return &kvLogger{core: &core{lvl: lvl, lg: log.New(w, "", 0)}}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

func (s *kvLogger) With(kv ...any) Logger {
	return &kvLogger{
		core:  s.core,
		scope: append(append([]string{}, s.scope...), kvPairs(kv...)...),
	}
}

func (s *kvLogger) SetLevel(lvl Level) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.lvl = lvl
}

func (s *kvLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *kvLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *kvLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *kvLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *kvLogger) log(l Level, tag, msg string, kv ...any) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if l < s.core.lvl {
		return
	}

	parts := []string{time.Now().Format("15:04:05"), tag}
	if m := strings.TrimSpace(msg); m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, s.scope...)
	parts = append(parts, kvPairs(kv...)...)

	s.core.lg.Println(strings.Join(parts, " "))
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%v", kv[i], v))
	}
	return out
}

// ParseLevel maps a level name to a Level, returning def for empty or unknown input.
func ParseLevel(s string, def Level) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf":
		return LevelInfo
	case "warn", "warning", "wrn":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return def
	}
}
