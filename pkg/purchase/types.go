package purchase

import "time"

// Record describes one purchase as reported by the platform store.
// It is ephemeral: the reconciler never persists records directly, only the
// entitlement derived from them.
type Record struct {
	ProductID string

	// TransactionID is the original/root transaction identifier issued by
	// the platform store. It stays stable across subscription renewals and
	// keys all server-side records for this purchase.
	TransactionID string

	TransactionDate time.Time

	// Receipt is the opaque receipt blob submitted to the validation backend.
	Receipt string
}

// Event is delivered on the asynchronous purchase stream. Exactly one of
// Record or Err is set: the platform surfaces completed purchases and
// purchase errors on the same stream.
type Event struct {
	Record *Record
	Err    error
}
