package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayKim88/polylingo-entitlements/pkg/async"
)

func TestRun_Result(t *testing.T) {
	t.Parallel()

	f := async.Run(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, f.Done())
}

func TestRun_Error(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := async.Run(context.Background(), func(context.Context) (int, error) {
		return 0, wantErr
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, wantErr)
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := async.Run(ctx, func(context.Context) (int, error) {
		t.Fatal("function must not run with a cancelled context")
		return 0, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Run(context.Background(), func(context.Context) (string, error) {
		<-release
		return "late", nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	// The computation is still running; its result stays observable.
	close(release)
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}

func TestFuture_SharedBetweenAwaiters(t *testing.T) {
	t.Parallel()

	var calls int
	f := async.Run(context.Background(), func(context.Context) (int, error) {
		calls++
		return 7, nil
	})

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Await()
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}
