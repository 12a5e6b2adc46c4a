package usage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// State is the persisted meter record for one device.
type State struct {
	Fingerprint string  `json:"fingerprint"`
	Date        string  `json:"date"`
	Count       float64 `json:"count"`
	Total       float64 `json:"total"`
}

// StateStore persists meter state on the device.
type StateStore interface {
	// Load retrieves the stored state, or ErrStateNotFound on first use.
	Load(ctx context.Context) (*State, error)

	// Save creates or replaces the stored state.
	Save(ctx context.Context, st *State) error
}

// FileStateStore persists meter state as a JSON file via temp-file rename.
type FileStateStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

func (fs *FileStateStore) Load(ctx context.Context) (*State, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Join(ErrStateCorrupted, err)
	}
	return &st, nil
}

func (fs *FileStateStore) Save(ctx context.Context, st *State) error {
	if st == nil {
		return ErrNilState
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return err
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path)
}

// MemoryStateStore is an in-memory StateStore for tests.
type MemoryStateStore struct {
	mu    sync.Mutex
	state *State
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{}
}

func (ms *MemoryStateStore) Load(ctx context.Context) (*State, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.state == nil {
		return nil, ErrStateNotFound
	}
	st := *ms.state
	return &st, nil
}

func (ms *MemoryStateStore) Save(ctx context.Context, st *State) error {
	if st == nil {
		return ErrNilState
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	copied := *st
	ms.state = &copied
	return nil
}
