package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level is a logging threshold.
type Level = slog.Level

const (
	LevelTrace Level = slog.LevelDebug - 4
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
	LevelFatal Level = slog.LevelError + 4
	LevelPanic Level = slog.LevelError + 8
)

var (
	levelVar   slog.LevelVar
	loggerMu   sync.RWMutex
	baseLogger *slog.Logger
)

func init() {
	levelVar.Set(LevelInfo)
	baseLogger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: &levelVar,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(levelName(lvl))
				}
			}
			return a
		},
	})
	return slog.New(handler)
}

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "panic":
		return LevelPanic, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level %q (use trace, debug, info, warn, error, fatal, panic)", s)
}

func levelName(l Level) string {
	switch {
	case l <= LevelTrace:
		return "TRACE"
	case l <= LevelDebug:
		return "DEBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	case l <= LevelError:
		return "ERROR"
	case l <= LevelFatal:
		return "FATAL"
	default:
		return "PANIC"
	}
}

func SetLevel(l Level) {
	levelVar.Set(l)
}

func GetLevel() Level {
	return levelVar.Level()
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	loggerMu.Lock()
	baseLogger = newLogger(w)
	loggerMu.Unlock()
}

func logf(level Level, format string, args ...any) {
	if level < levelVar.Level() {
		return
	}
	loggerMu.RLock()
	l := baseLogger
	loggerMu.RUnlock()
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func Trace(format string, args ...any) {
	logf(LevelTrace, format, args...)
}

func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}
