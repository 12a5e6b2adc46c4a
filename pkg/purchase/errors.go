package purchase

import "errors"

var (
	// ErrUnavailable signals that the process has no purchase capability at
	// all (simulator, dev build, store app missing). Expected and non-fatal.
	ErrUnavailable = errors.New("purchase store not available")

	// ErrNotReady signals a call before Connect completed.
	ErrNotReady = errors.New("purchase store not connected")

	// ErrCancelled signals that the user dismissed the platform purchase UI.
	ErrCancelled = errors.New("purchase cancelled by user")

	// ErrUnknownProduct signals a purchase request for a product the store
	// does not sell.
	ErrUnknownProduct = errors.New("unknown product identifier")
)
