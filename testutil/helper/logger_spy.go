package helper

import (
	"sync"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy implements the fairing's Logger interface and captures all
// log calls for assertions.
type LoggerSpy struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{entries: make([]LogEntry, 0)}
}

// Debug captures a debug-level log call.
func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args) }

// Info captures an info-level log call.
func (s *LoggerSpy) Info(msg string, args ...any) { s.record("info", msg, args) }

// Warn captures a warn-level log call.
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record("warn", msg, args) }

// Error captures an error-level log call.
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args) }

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, LogEntry{Level: level, Message: msg, Args: args})
}

// Entries returns a copy of all captured log entries.
func (s *LoggerSpy) Entries() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]LogEntry, len(s.entries))
	copy(entries, s.entries)

	return entries
}

// HasEntry checks for a captured log call with the given level and message.
func (s *LoggerSpy) HasEntry(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}

	return false
}

// Reset clears all captured log entries.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}
