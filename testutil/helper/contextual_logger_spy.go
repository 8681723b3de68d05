package helper

import (
	"context"
	"sync"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures
// contextual logging calls for testing trace-correlated log output.
type ContextualLoggerSpy struct {
	records     []ContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// ContextualLogRecord represents a recorded contextual log call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
// Set recordCalls to true to capture all logging calls for inspection in tests.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

// DebugContext implements the ContextualLogger interface for testing.
func (l *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	l.append(ctx, "debug", msg, args)
}

// InfoContext implements the ContextualLogger interface for testing.
func (l *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	l.append(ctx, "info", msg, args)
}

// WarnContext implements the ContextualLogger interface for testing.
func (l *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	l.append(ctx, "warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (l *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.append(ctx, "error", msg, args)
}

func (l *ContextualLoggerSpy) append(ctx context.Context, level, msg string, args []any) {
	if !l.recordCalls {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, ContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    args,
		Context: ctx,
	})
}

// GetRecordCount returns the number of captured log records.
func (l *ContextualLoggerSpy) GetRecordCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// GetRecords returns a copy of all captured log records.
func (l *ContextualLoggerSpy) GetRecords() []ContextualLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]ContextualLogRecord, len(l.records))
	copy(records, l.records)

	return records
}

// HasLogWithMessage checks if there's a record at the given level with the given message.
func (l *ContextualLoggerSpy) HasLogWithMessage(level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, record := range l.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// Reset clears all captured log records.
func (l *ContextualLoggerSpy) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = l.records[:0]
}
