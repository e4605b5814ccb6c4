package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore keeps records in a slice to preserve mount order, with an
// index from container id to position for lookups.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int
}

// NewMemoryStore creates a new in-memory [Store] implementation.
//
// The store is immediately ready for use. No cleanup is required when done.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// Put records a chart, replacing any previous record for the same container.
func (m *MemoryStore) Put(rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i, ok := m.index[rec.ContainerID]; ok {
		m.records[i] = rec
		return
	}
	m.index[rec.ContainerID] = len(m.records)
	m.records = append(m.records, rec)
}

// Get returns the record for containerID.
func (m *MemoryStore) Get(containerID string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[containerID]
	if !ok {
		return Record{}, false
	}
	return m.records[i], true
}

// GetAll returns a snapshot of all records in mount order.
func (m *MemoryStore) GetAll() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Reset removes every record.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	m.index = make(map[string]int)
}
