package async

import (
	"context"
	"time"
)

// Future represents the eventual result of a computation started with Run.
// A Future may be awaited by any number of goroutines; all of them observe
// the same result. This makes it suitable as a single-flight handle: keep
// one *Future per in-flight operation and hand it to every caller.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Run starts fn in its own goroutine and returns a Future for its result.
// If ctx is already cancelled the function is never invoked and the Future
// completes with the context error.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for completion or the given timeout, whichever
// comes first. On timeout it returns ErrTimeout; the underlying goroutine
// keeps running and its eventual result is still observable via Await.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// Done reports whether the computation has completed, without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
