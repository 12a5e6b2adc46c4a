// Package purchase wraps the platform in-app-purchase store behind the
// Store interface: connect/disconnect, list active purchases, request a
// purchase, finish a transaction, and a stream of asynchronous purchase
// events.
//
// The platform ledger is an eventually consistent external collaborator.
// Callers must expect stale listings, transient failures, and events for
// purchases they have already processed; the entitlement reconciler owns
// all deduplication and conflict resolution on top of this interface.
//
// The Hub type implements the event stream: store implementations publish
// platform callbacks into it, and the reconciler subscribes at
// initialization and unsubscribes at cleanup - teardown closes subscribers
// before the connection so no event reaches a torn-down consumer.
//
// MemoryStore is a configurable in-process implementation used by
// development builds without purchase capability and by tests.
package purchase
