// Package remote syncs subscription and daily-usage records with the
// remote database.
//
// All records are keyed by the purchase's original transaction identifier,
// never by an account id: the product works for users who are not signed
// into any account, and the transaction id is the only stable key the
// platform guarantees across renewals. Upserts with an empty transaction
// id are silent no-ops so pure free users flow through the same code path.
//
// PostgresClient is the production implementation (pgx connection pool
// with retrying Connect, goose-managed schema). MemoryClient backs tests
// and supports error injection for exercising fail-closed paths.
package remote
