// Package snapshot defines the SubscriptionSnapshot entitlement record and
// its durable local cache.
//
// The snapshot is the single authoritative local view of what plan the user
// is entitled to. It is created with the free default on first run, mutated
// exclusively through the reconciler's commit path, and never deleted:
// losing an entitlement is expressed by setting the plan back to free.
//
// Reads must go through Normalized, which applies two time-dependent
// corrections without requiring a network round trip: coercing an expired
// snapshot to the free plan (fail closed) and resetting the daily usage
// counter on calendar-day rollover.
//
// Three Store implementations are provided: FileStore for on-device
// persistence, RedisStore for server-side deployments, and MemoryStore for
// tests.
package snapshot
