package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayKim88/polylingo-entitlements/pkg/entitlement"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("loads default plans", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.NewCatalog(ctx, entitlement.NewInMemSource(entitlement.DefaultPlans()...))
		require.NoError(t, err)

		free := catalog.Free()
		assert.Equal(t, entitlement.PlanFree, free.ID)
		assert.Equal(t, 2, free.MaxLanguages)

		plan, err := catalog.PlanForProduct("app.polylingo.tier1.monthly")
		require.NoError(t, err)
		assert.Equal(t, "tier1_monthly", plan.ID)
		assert.Equal(t, float64(300), plan.DailyLimit)

		plan, err = catalog.Plan("tier2_monthly")
		require.NoError(t, err)
		assert.Equal(t, entitlement.UnlimitedDaily, plan.DailyLimit)

		assert.Len(t, catalog.ProductIDs(), 4)
	})

	t.Run("rejects catalog without free plan", func(t *testing.T) {
		t.Parallel()

		source := entitlement.NewInMemSource(entitlement.Plan{
			ID:           "tier1_monthly",
			MaxLanguages: 3,
			DailyLimit:   300,
		})
		_, err := entitlement.NewCatalog(ctx, source)
		require.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("rejects duplicate product ids", func(t *testing.T) {
		t.Parallel()

		source := entitlement.NewInMemSource(
			entitlement.Plan{ID: entitlement.PlanFree, MaxLanguages: 2, DailyLimit: 100},
			entitlement.Plan{ID: "a", MaxLanguages: 3, DailyLimit: 300, ProductIDs: []string{"prod.x"}},
			entitlement.Plan{ID: "b", MaxLanguages: 5, DailyLimit: 500, ProductIDs: []string{"prod.x"}},
		)
		_, err := entitlement.NewCatalog(ctx, source)
		require.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("rejects plan without languages", func(t *testing.T) {
		t.Parallel()

		source := entitlement.NewInMemSource(
			entitlement.Plan{ID: entitlement.PlanFree, MaxLanguages: 0, DailyLimit: 100},
		)
		_, err := entitlement.NewCatalog(ctx, source)
		require.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("unknown lookups", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.NewCatalog(ctx, entitlement.NewInMemSource(entitlement.DefaultPlans()...))
		require.NoError(t, err)

		_, err = catalog.Plan("nope")
		assert.ErrorIs(t, err, entitlement.ErrPlanNotFound)

		_, err = catalog.PlanForProduct("nope")
		assert.ErrorIs(t, err, entitlement.ErrProductNotFound)
	})
}

func TestCatalogUnitCost(t *testing.T) {
	t.Parallel()

	catalog, err := entitlement.NewCatalog(context.Background(),
		entitlement.NewInMemSource(entitlement.DefaultPlans()...))
	require.NoError(t, err)

	free := catalog.Free() // 2 languages
	assert.InDelta(t, 0.5, catalog.UnitCost(free, 1), 1e-9)
	assert.InDelta(t, 1.0, catalog.UnitCost(free, 2), 1e-9)

	// Out-of-range fan-outs are clamped, never free or over-unit.
	assert.InDelta(t, 0.5, catalog.UnitCost(free, 0), 1e-9)
	assert.InDelta(t, 1.0, catalog.UnitCost(free, 7), 1e-9)

	pro, err := catalog.Plan("tier2_monthly") // 5 languages
	require.NoError(t, err)
	assert.InDelta(t, 0.6, catalog.UnitCost(pro, 3), 1e-9)
}
