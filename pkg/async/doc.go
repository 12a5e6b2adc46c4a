// Package async provides a minimal generic Future for running a computation
// in the background and awaiting its result, optionally with a timeout.
//
// The package exists for two recurring patterns in this module:
//
//   - Single-flight guards: concurrent callers of a non-reentrant operation
//     (e.g. connecting to the platform purchase store) share one in-flight
//     *Future instead of each starting a duplicate attempt.
//
//   - Timeout races: operations against remote collaborators (receipt
//     validation, purchase listing during restore) are raced against a timer
//     via AwaitWithTimeout and resolve to a defined fallback on ErrTimeout
//     rather than hanging.
//
// # Usage
//
//	future := async.Run(ctx, func(ctx context.Context) (bool, error) {
//	    return store.Connect(ctx)
//	})
//	ok, err := future.AwaitWithTimeout(10 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//	    // apply the fallback policy
//	}
package async
