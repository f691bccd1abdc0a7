package mocks

import (
	"fmt"
	"strings"

	"github.com/user/nvencprobe/pkg/ports"
)

// LogEntry is a single recorded log call.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// Logger is a mock implementation of ports.Logger that records formatted
// messages. Component loggers share the parent's record.
type Logger struct {
	component string
	entries   *[]LogEntry
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{entries: &[]LogEntry{}}
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record(ports.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record(ports.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record(ports.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record(ports.LevelError, msg, args) }

func (l *Logger) WithComponent(component string) ports.Logger {
	return &Logger{component: component, entries: l.entries}
}

func (l *Logger) record(level ports.LogLevel, msg string, args []interface{}) {
	*l.entries = append(*l.entries, LogEntry{
		Level:     level,
		Component: l.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

// Entries returns every recorded entry.
func (l *Logger) Entries() []LogEntry {
	return *l.entries
}

// Messages returns recorded messages at level.
func (l *Logger) Messages(level ports.LogLevel) []string {
	var out []string
	for _, e := range *l.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (l *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, m := range l.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
