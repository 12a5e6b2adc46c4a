package snapshot

import "context"

// Store persists the single authoritative snapshot as one serialized JSON
// blob under a fixed key. It is the source of truth when the remote store
// is unreachable.
type Store interface {
	// Load retrieves the stored snapshot.
	// Returns ErrNotFound when no snapshot has been saved yet (first run).
	Load(ctx context.Context) (*Snapshot, error)

	// Save creates or replaces the stored snapshot.
	Save(ctx context.Context, s *Snapshot) error
}
