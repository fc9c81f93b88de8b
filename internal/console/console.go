// Package console provides the process logger: a slog logger behind a tint
// handler, wrapped so that attributes stored in a context with slogctx are
// added to every record.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
)

// TimeFormat is the timestamp layout of console output
const TimeFormat = "2006-01-02 15:04:05.000"

// ConsoleLogger formats printf style messages onto a slog logger
type ConsoleLogger struct {
	// DebugLevel above zero enables Debug output
	DebugLevel int

	mu     sync.RWMutex
	logger *slog.Logger
}

// Logger is the process wide console logger
var Logger = New(os.Stderr, false)

// NewHandler builds the tint handler used for console output
func NewHandler(w io.Writer, noColor bool) slog.Handler {
	return slogctx.NewHandler(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: TimeFormat,
		NoColor:    noColor,
	}), nil)
}

// New creates a console logger writing to w
func New(w io.Writer, noColor bool) *ConsoleLogger {
	return &ConsoleLogger{logger: slog.New(NewHandler(w, noColor))}
}

// SetOutput redirects the logger; io.Discard silences it
func (l *ConsoleLogger) SetOutput(w io.Writer, noColor bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(NewHandler(w, noColor))
}

// Slog returns the underlying structured logger
func (l *ConsoleLogger) Slog() *slog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

// Context returns ctx carrying the underlying logger for slogctx calls
func (l *ConsoleLogger) Context(ctx context.Context) context.Context {
	return slogctx.NewCtx(ctx, l.Slog())
}

func (l *ConsoleLogger) log(level slog.Level, format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.Slog().Log(context.Background(), level, msg)
}

// Debug logs when DebugLevel is above zero
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.log(slog.LevelDebug, format, args...)
}

// Info logs an informational message
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, format, args...)
}

// Warn logs a warning
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

// Error logs an error
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

// Printf makes the logger usable as a Debugger; output is debug level
func (l *ConsoleLogger) Printf(format string, args ...interface{}) {
	l.Debug(format, args...)
}
