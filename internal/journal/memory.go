package journal

import (
	"context"
	"sync"
	"time"
)

type memoryJournal struct {
	mu      sync.Mutex
	nextID  int64
	entries []Entry
}

// NewMemory returns an in-process journal. Entries live only as long as the
// process; it backs tests and deployments that opt out of persistence.
func NewMemory() Journal { return newMemory() }

func newMemory() *memoryJournal { return &memoryJournal{nextID: 1} }

func (m *memoryJournal) Driver() Driver { return DriverMemory }

func (m *memoryJournal) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == 0 {
		e.ID = m.nextID
		m.nextID++
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryJournal) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *memoryJournal) Close() error { return nil }
