package remote

import (
	"context"
	"time"
)

// SubscriptionRow is the server-side subscription record, keyed by the
// stable original transaction identifier rather than any account id - a
// user may never be authenticated with an account at all.
type SubscriptionRow struct {
	TransactionID string
	PlanID        string
	IsActive      bool
	StartDate     int64 // epoch millis
	EndDate       int64 // epoch millis; 0 means no expiry
	UpdatedAt     time.Time
}

// UsageRow is the server-side daily usage record for one transaction id
// and calendar day.
type UsageRow struct {
	TransactionID string
	Date          string // calendar day, "2006-01-02"
	Count         float64
	StartDate     int64
	EndDate       int64
	UpdatedAt     time.Time
}

// SyncClient wraps upsert/query calls against the remote subscription and
// usage tables.
//
// All operations are keyed by transaction id. Upserts with an empty
// transaction id are silent no-ops, not errors: pure free users have no
// purchase to key a server record on. Point lookups with an empty id
// return ErrNotFound.
//
// Callers decide failure semantics: subscription upserts are synchronous
// and failure-propagating (a failed write must trigger the reconciler's
// fail-closed fallback), usage upserts are fire-and-forget with logged
// failures.
type SyncClient interface {
	UpsertSubscription(ctx context.Context, row SubscriptionRow) error
	UpsertDailyUsage(ctx context.Context, row UsageRow) error

	// GetSubscription returns the latest subscription row for the
	// transaction id, or ErrNotFound.
	GetSubscription(ctx context.Context, transactionID string) (*SubscriptionRow, error)

	// GetDailyUsage returns the usage row for the transaction id and day,
	// or ErrNotFound.
	GetDailyUsage(ctx context.Context, transactionID, date string) (*UsageRow, error)
}
