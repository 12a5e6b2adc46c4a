package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the snapshot as a JSON file on the device.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated blob behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed snapshot store at the given path.
// Parent directories are created lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	return &s, nil
}

func (fs *FileStore) Save(ctx context.Context, s *Snapshot) error {
	if s == nil {
		return ErrNilValue
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.Marshal(s)
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
