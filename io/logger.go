package dispatchio

import (
	"fmt"
	"io"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the tag used for the level in output.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a small leveled logger bound to an IOManager. The
// dispatcher uses it as the side channel for handler failures; the
// original cause of a converted error is only ever visible here.
type Logger struct {
	io           *IOManager
	min          LogLevel
	withTime     bool
	timeFormat   string
	errorsStderr bool
}

// NewLogger creates a logger bound to the given IOManager. Warnings
// and errors go to stderr by default.
func NewLogger(m *IOManager) *Logger {
	return &Logger{
		io:           m,
		min:          LevelInfo,
		errorsStderr: true,
		timeFormat:   "15:04:05",
	}
}

// WithLevel sets the minimum level that will be emitted.
func (l *Logger) WithLevel(min LogLevel) *Logger {
	l.min = min
	return l
}

// WithTimestamp enables or disables a timestamp prefix.
func (l *Logger) WithTimestamp(enabled bool) *Logger {
	l.withTime = enabled
	return l
}

// ErrorsToStderr controls whether warnings and errors go to stderr.
func (l *Logger) ErrorsToStderr(enabled bool) *Logger {
	l.errorsStderr = enabled
	return l
}

// Log emits a message at the given level.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if level < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := "[" + level.String() + "]"
	if l.withTime {
		line += " [" + time.Now().Format(l.timeFormat) + "]"
	}
	line += " " + msg

	switch level {
	case LevelError:
		line = l.io.ErrorText(line)
	case LevelWarning:
		line = l.io.WarnText(line)
	case LevelDebug, LevelInfo:
	}
	fmt.Fprintln(l.selectWriter(level), line)
}

func (l *Logger) selectWriter(level LogLevel) io.Writer {
	if l.errorsStderr && (level == LevelError || level == LevelWarning) {
		return l.io.Err()
	}
	return l.io.Out()
}

// Debug emits a debug message.
func (l *Logger) Debug(format string, args ...any) { l.Log(LevelDebug, format, args...) }

// Info emits an informational message.
func (l *Logger) Info(format string, args ...any) { l.Log(LevelInfo, format, args...) }

// Warning emits a warning message.
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }

// Error emits an error message.
func (l *Logger) Error(format string, args ...any) { l.Log(LevelError, format, args...) }
