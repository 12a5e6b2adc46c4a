package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayKim88/polylingo-entitlements/pkg/remote"
)

func TestMemoryClient_SubscriptionRoundTrip(t *testing.T) {
	t.Parallel()

	client := remote.NewMemoryClient()
	ctx := context.Background()

	row := remote.SubscriptionRow{
		TransactionID: "txn-1",
		PlanID:        "tier1_monthly",
		IsActive:      true,
		StartDate:     1000,
		EndDate:       2000,
	}
	require.NoError(t, client.UpsertSubscription(ctx, row))

	got, err := client.GetSubscription(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "tier1_monthly", got.PlanID)
	assert.True(t, got.IsActive)
	assert.False(t, got.UpdatedAt.IsZero())

	// Upsert replaces, never duplicates.
	row.PlanID = "tier2_monthly"
	require.NoError(t, client.UpsertSubscription(ctx, row))
	got, err = client.GetSubscription(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "tier2_monthly", got.PlanID)
}

func TestMemoryClient_EmptyTransactionID(t *testing.T) {
	t.Parallel()

	client := remote.NewMemoryClient()
	ctx := context.Background()

	// Upserts without a transaction id are no-ops, not errors.
	require.NoError(t, client.UpsertSubscription(ctx, remote.SubscriptionRow{PlanID: "free"}))
	require.NoError(t, client.UpsertDailyUsage(ctx, remote.UsageRow{Date: "2025-03-10"}))
	assert.Zero(t, client.SubscriptionUpserts())

	// Lookups without a transaction id are not found.
	_, err := client.GetSubscription(ctx, "")
	assert.ErrorIs(t, err, remote.ErrNotFound)
	_, err = client.GetDailyUsage(ctx, "", "2025-03-10")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestMemoryClient_UsageRoundTrip(t *testing.T) {
	t.Parallel()

	client := remote.NewMemoryClient()
	ctx := context.Background()

	row := remote.UsageRow{TransactionID: "txn-1", Date: "2025-03-10", Count: 1.4}
	require.NoError(t, client.UpsertDailyUsage(ctx, row))

	got, err := client.GetDailyUsage(ctx, "txn-1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1.4, got.Count)

	_, err = client.GetDailyUsage(ctx, "txn-1", "2025-03-11")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestMemoryClient_ErrorInjection(t *testing.T) {
	t.Parallel()

	client := remote.NewMemoryClient()
	ctx := context.Background()

	wantErr := errors.New("connection reset")
	client.SubscriptionErr = wantErr

	err := client.UpsertSubscription(ctx, remote.SubscriptionRow{TransactionID: "txn-1", PlanID: "tier1_monthly"})
	assert.ErrorIs(t, err, wantErr)

	_, getErr := client.GetSubscription(ctx, "txn-1")
	assert.ErrorIs(t, getErr, remote.ErrNotFound, "failed upsert must not persist")
}
