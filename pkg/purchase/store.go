package purchase

import "context"

// Store wraps the platform in-app-purchase API. Implementations are
// asynchronous collaborators: they may fail, return stale data, or deliver
// purchase events outside of any explicit call.
//
// All methods except Connect must surface ErrNotReady when called before a
// successful Connect rather than crashing; the engine tolerates triggers
// firing before initialization completes.
type Store interface {
	// Connect establishes the platform billing connection.
	// Returns ErrUnavailable when the process has no real purchase
	// capability (simulator, dev build) - an expected, non-fatal condition.
	Connect(ctx context.Context) error

	// Disconnect tears the connection down. Event subscribers must be
	// closed before the connection itself so no events are delivered to a
	// torn-down reconciler. Idempotent.
	Disconnect() error

	// ListActive returns the platform's current view of active purchases.
	ListActive(ctx context.Context) ([]Record, error)

	// Request starts the platform purchase flow for a product.
	// User cancellation surfaces as ErrCancelled, a distinguished expected
	// outcome, never as a generic failure.
	Request(ctx context.Context, productID string) (*Record, error)

	// Finish acknowledges a transaction with the platform so it stops
	// being redelivered.
	Finish(ctx context.Context, rec Record) error

	// Subscribe returns a subscriber for asynchronous purchase events.
	// The subscription is released when ctx is cancelled or the subscriber
	// is closed.
	Subscribe(ctx context.Context) Subscriber
}
