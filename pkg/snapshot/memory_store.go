package snapshot

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and short-lived processes.
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	// SaveErr, when set, is returned by every Save call. Used by tests to
	// exercise commit-failure paths.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.snapshot == nil {
		return nil, ErrNotFound
	}
	return ms.snapshot.Clone(), nil
}

func (ms *MemoryStore) Save(ctx context.Context, s *Snapshot) error {
	if s == nil {
		return ErrNilValue
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.SaveErr != nil {
		return ms.SaveErr
	}
	ms.snapshot = s.Clone()
	return nil
}
