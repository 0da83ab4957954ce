package registry

import (
	"fmt"
	"sync"
)

// MemStore is an in-memory RecordStore for tests and ephemeral registries.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]*FileRecord
}

// Compile-time interface check.
var _ RecordStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory record store.
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[string][]*FileRecord),
	}
}

// Append adds rec to the end of owner's sequence.
func (s *MemStore) Append(owner string, rec *FileRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: file record", ErrNilRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[owner] = append(s.records[owner], rec)
	return nil
}

// List returns a copy of owner's records in append order.
func (s *MemStore) List(owner string) ([]*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*FileRecord, len(s.records[owner]))
	copy(records, s.records[owner])
	return records, nil
}
