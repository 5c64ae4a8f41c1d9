package core

import (
	"context"
	"sync"
)

// DefaultOperationLogSize bounds an OperationLog created with a zero limit.
const DefaultOperationLogSize = 1000

// OperationLog is an AuditRecorder that keeps the most recent entries in
// memory, oldest first.
type OperationLog struct {
	mu      sync.Mutex
	limit   int
	entries []AuditEntry
}

// NewOperationLog returns a log keeping at most limit entries.
func NewOperationLog(limit int) *OperationLog {
	if limit <= 0 {
		limit = DefaultOperationLogSize
	}
	return &OperationLog{limit: limit}
}

// Record implements AuditRecorder.
func (l *OperationLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, entry)
}

// Entries copies the retained entries.
func (l *OperationLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Failures returns the retained entries with error status.
func (l *OperationLog) Failures() []AuditEntry {
	var out []AuditEntry
	for _, e := range l.Entries() {
		if e.Status == AuditStatusError {
			out = append(out, e)
		}
	}
	return out
}
