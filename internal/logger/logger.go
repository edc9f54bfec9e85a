package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel parses a level name such as "debug" or "WARN".
// An empty string means INFO; "WARNING" is accepted as an alias for WARN.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "", "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

func (lv Level) String() string {
	switch lv {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger handles leveled logging with optional file output
type Logger struct {
	level   Level
	writer  io.Writer
	mu      sync.Mutex
	fileLog *os.File
	hasBar  bool
}

// New creates a Logger that emits messages at or above the given level
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		writer: os.Stdout,
	}
}

// SetFileLog enables logging to a file
func (l *Logger) SetFileLog(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileLog = f
	return nil
}

// SetProgressBar indicates that a progress bar is active
func (l *Logger) SetProgressBar(active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasBar = active
}

// Close closes the log file if open
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		return l.fileLog.Close()
	}
	return nil
}

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Debug logs detailed messages only at DEBUG level.
// When suppressed on stdout, debug messages still reach the file log.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.log(LevelDebug, format, args...)
	} else if l.fileLog != nil {
		l.logToFile(LevelDebug, format, args...)
	}
}

// Error logs error messages to stderr
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("[ERROR] "+format+"\n", args...)
	fmt.Fprint(os.Stderr, msg)

	if l.fileLog != nil {
		l.fileLog.WriteString(msg)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// log handles the actual logging
func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var msg string
	if level == LevelInfo {
		msg = fmt.Sprintf(format+"\n", args...)
	} else {
		msg = fmt.Sprintf("["+level.String()+"] "+format+"\n", args...)
	}

	// Write to stdout (unless a progress bar owns the terminal)
	if l.level <= LevelDebug || !l.hasBar {
		fmt.Fprint(l.writer, msg)
	}

	// Always write to file if available
	if l.fileLog != nil {
		l.fileLog.WriteString(msg)
	}
}

// logToFile writes only to file
func (l *Logger) logToFile(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		msg := fmt.Sprintf("["+level.String()+"] "+format+"\n", args...)
		l.fileLog.WriteString(msg)
	}
}
