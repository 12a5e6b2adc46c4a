package entitlement_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayKim88/polylingo-entitlements/pkg/entitlement"
	"github.com/JayKim88/polylingo-entitlements/pkg/purchase"
	"github.com/JayKim88/polylingo-entitlements/pkg/receipt"
	"github.com/JayKim88/polylingo-entitlements/pkg/remote"
	"github.com/JayKim88/polylingo-entitlements/pkg/snapshot"
)

const (
	productTier1 = "app.polylingo.tier1.monthly"
	productTier2 = "app.polylingo.tier2.monthly"
)

// stubValidator is a receipt.Validator with a scripted outcome.
type stubValidator struct {
	mu     sync.Mutex
	result receipt.Result
	err    error
	calls  int
}

func (v *stubValidator) Validate(ctx context.Context, rec purchase.Record) (receipt.Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	return v.result, v.err
}

func (v *stubValidator) set(result receipt.Result, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = result
	v.err = err
}

// recordingNotifier captures out-of-band notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []entitlement.Notice
}

func (n *recordingNotifier) Notify(notice entitlement.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) kinds() []entitlement.NoticeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]entitlement.NoticeKind, len(n.notices))
	for i, notice := range n.notices {
		kinds[i] = notice.Kind
	}
	return kinds
}

type fixture struct {
	store     *purchase.MemoryStore
	validator *stubValidator
	sync      *remote.MemoryClient
	local     *snapshot.MemoryStore
	notifier  *recordingNotifier
	svc       *entitlement.Service
}

func newFixture(t *testing.T, storeOpts []purchase.MemoryOption, svcOpts ...entitlement.Option) *fixture {
	t.Helper()

	catalog, err := entitlement.NewCatalog(context.Background(),
		entitlement.NewInMemSource(entitlement.DefaultPlans()...))
	require.NoError(t, err)

	f := &fixture{
		store:     purchase.NewMemoryStore(storeOpts...),
		validator: &stubValidator{result: receipt.Result{Valid: true}},
		sync:      remote.NewMemoryClient(),
		local:     snapshot.NewMemoryStore(),
		notifier:  &recordingNotifier{},
	}

	opts := append([]entitlement.Option{
		entitlement.WithNotifier(f.notifier),
		entitlement.WithInitRetryDelay(0),
		entitlement.WithThrottleInterval(time.Nanosecond),
	}, svcOpts...)

	f.svc = entitlement.NewService(f.store, f.validator, f.sync, f.local, catalog, opts...)
	t.Cleanup(func() { _ = f.svc.Cleanup() })
	return f
}

func record(productID, transactionID string, at time.Time) purchase.Record {
	return purchase.Record{
		ProductID:       productID,
		TransactionID:   transactionID,
		TransactionDate: at,
		Receipt:         "receipt-" + transactionID,
	}
}

func TestServiceInitialize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("single flight", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := f.svc.Initialize(ctx)
				assert.NoError(t, err)
				assert.True(t, ok)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), f.store.ConnectCalls())
	})

	t.Run("retries transient failure once", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{purchase.WithConnectFailures(1)})

		ok, err := f.svc.Initialize(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(2), f.store.ConnectCalls())
	})

	t.Run("unavailable store is not an error", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{purchase.WithAvailable(false)})

		ok, err := f.svc.Initialize(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		// Purchases fail fast in local-only mode.
		_, err = f.svc.Purchase(ctx, productTier1)
		require.ErrorIs(t, err, purchase.ErrUnavailable)
	})

	t.Run("failed attempt is retried by the next call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{purchase.WithConnectFailures(3)})

		_, err := f.svc.Initialize(ctx)
		require.Error(t, err)

		ok, err := f.svc.Initialize(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestServiceReconcile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first launch yields free", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)
		assert.True(t, snap.IsActive)
		assert.Empty(t, snap.OriginalTransactionID)
		assert.Zero(t, snap.DailyUsage.Count)

		current, err := f.svc.CurrentSubscription(ctx)
		require.NoError(t, err)
		assert.Equal(t, snap.PlanID, current.PlanID)
	})

	t.Run("valid purchase grants plan", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier1, "tx-1", time.Now())),
		})
		expiry := time.Now().Add(30 * 24 * time.Hour)
		f.validator.set(receipt.Result{Valid: true, ExpiresAt: expiry}, nil)

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", snap.PlanID)
		assert.True(t, snap.IsActive)
		assert.Equal(t, "tx-1", snap.OriginalTransactionID)
		assert.Equal(t, expiry.UnixMilli(), snap.EndDate)
		assert.True(t, snap.IsTrialUsed)

		row, err := f.sync.GetSubscription(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", row.PlanID)
	})

	t.Run("invalid receipt downgrades but keeps the key", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier1, "tx-bad", time.Now())),
		})
		f.validator.set(receipt.Result{Valid: false}, nil)

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)
		assert.Equal(t, "tx-bad", snap.OriginalTransactionID)

		// The downgrade reaches the server under the same key.
		row, err := f.sync.GetSubscription(ctx, "tx-bad")
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, row.PlanID)
	})

	t.Run("remote commit failure fails closed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier2, "tx-2", time.Now())),
		})
		f.sync.SubscriptionErr = errors.New("db down")

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)

		current, err := f.svc.CurrentSubscription(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, current.PlanID)
	})

	t.Run("listing failure falls back to free preserving usage", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithListError(errors.New("not signed in")),
		})

		_, err := f.svc.IncrementUsage(ctx, 2)
		require.NoError(t, err)

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)
		assert.InDelta(t, 1.0, snap.DailyUsage.Count, 1e-9)
	})

	t.Run("latest transaction wins", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(
				record(productTier2, "tx-old", now.Add(-time.Hour)),
				record(productTier1, "tx-new", now),
			),
		})

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", snap.PlanID)
		assert.Equal(t, "tx-new", snap.OriginalTransactionID)
	})

	t.Run("throttle serves the snapshot", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil, entitlement.WithThrottleInterval(time.Hour))

		_, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		_, err = f.svc.Reconcile(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1), f.store.ListCalls())
	})

	t.Run("forced pass ignores the throttle", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier1, "tx-force", time.Now())),
		}, entitlement.WithThrottleInterval(time.Hour))

		_, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		_, err = f.svc.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), f.store.ListCalls())

		snap, err := f.svc.ReconcileNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", snap.PlanID)
		assert.Equal(t, int64(2), f.store.ListCalls())
	})

	t.Run("overlapping passes list once", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithListDelay(50 * time.Millisecond),
		})

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.Reconcile(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), f.store.ListCalls())
	})

	t.Run("steady state preserves usage", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier1, "tx-3", time.Now())),
		})

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, "tier1_monthly", snap.PlanID)

		_, err = f.svc.IncrementUsage(ctx, 3)
		require.NoError(t, err)

		snap, err = f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", snap.PlanID)
		assert.InDelta(t, 1.0, snap.DailyUsage.Count, 1e-9)
	})

	t.Run("plan change resets usage", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		f := newFixture(t, []purchase.MemoryOption{
			purchase.WithRecords(record(productTier1, "tx-4", now.Add(-time.Hour))),
		})

		snap, err := f.svc.Reconcile(ctx)
		require.NoError(t, err)
		require.Equal(t, "tier1_monthly", snap.PlanID)

		_, err = f.svc.IncrementUsage(ctx, 3)
		require.NoError(t, err)

		f.store.SetRecords(record(productTier2, "tx-5", now))

		snap, err = f.svc.Reconcile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tier2_monthly", snap.PlanID)
		assert.Zero(t, snap.DailyUsage.Count)
		assert.True(t, snap.IsTrialUsed, "trial flag stays sticky across plan changes")
	})
}

func TestServiceCurrentSubscription(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("expired entitlement coerced to free on read", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		now := time.Now()

		require.NoError(t, f.local.Save(ctx, &snapshot.Snapshot{
			PlanID:                "tier1_monthly",
			IsActive:              true,
			StartDate:             now.Add(-48 * time.Hour).UnixMilli(),
			EndDate:               now.Add(-time.Hour).UnixMilli(),
			DailyUsage:            snapshot.DailyUsage{Date: snapshot.Day(now), Count: 7},
			IsTrialUsed:           true,
			OriginalTransactionID: "tx-exp",
		}))

		snap, err := f.svc.CurrentSubscription(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)
		assert.True(t, snap.IsActive)
		assert.Zero(t, snap.EndDate)
		assert.InDelta(t, 7.0, snap.DailyUsage.Count, 1e-9, "usage survives the downgrade")
		assert.True(t, snap.IsTrialUsed)
		assert.Equal(t, "tx-exp", snap.OriginalTransactionID)
	})

	t.Run("day rollover resets usage", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		now := time.Now()

		require.NoError(t, f.local.Save(ctx, &snapshot.Snapshot{
			PlanID:     entitlement.PlanFree,
			IsActive:   true,
			DailyUsage: snapshot.DailyUsage{Date: snapshot.Day(now.Add(-24 * time.Hour)), Count: 42},
		}))

		snap, err := f.svc.CurrentSubscription(ctx)
		require.NoError(t, err)
		assert.Equal(t, snapshot.Day(now), snap.DailyUsage.Date)
		assert.Zero(t, snap.DailyUsage.Count)
	})

	t.Run("first run yields free default", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)

		snap, err := f.svc.CurrentSubscription(ctx)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanFree, snap.PlanID)
		assert.True(t, snap.IsActive)
	})
}
