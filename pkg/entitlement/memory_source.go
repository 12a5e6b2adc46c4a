package entitlement

import (
	"context"
	"slices"
)

type inMemSource struct {
	plans map[string]Plan
}

// NewInMemSource returns an in-memory plan Source with a deep copy of the
// given plans. Panics if no plans are provided: the engine cannot operate
// without at least the free plan.
func NewInMemSource(plans ...Plan) Source {
	if len(plans) < 1 {
		panic("entitlement: at least one plan is required")
	}

	copied := make(map[string]Plan, len(plans))
	for _, plan := range plans {
		plan.ProductIDs = slices.Clone(plan.ProductIDs)
		copied[plan.ID] = plan
	}
	return &inMemSource{plans: copied}
}

func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	copied := make(map[string]Plan, len(s.plans))
	for id, plan := range s.plans {
		plan.ProductIDs = slices.Clone(plan.ProductIDs)
		copied[id] = plan
	}
	return copied, nil
}

// DefaultPlans returns the PolyLingo plan lineup: the free tier plus the
// paid tiers sold through the platform store.
func DefaultPlans() []Plan {
	return []Plan{
		{
			ID:           PlanFree,
			Name:         "Free",
			MaxLanguages: 2,
			DailyLimit:   100,
			Interval:     BillingIntervalNone,
		},
		{
			ID:           "tier1_monthly",
			Name:         "Standard Monthly",
			ProductIDs:   []string{"app.polylingo.tier1.monthly"},
			MaxLanguages: 3,
			DailyLimit:   300,
			Interval:     BillingIntervalMonthly,
			Price:        Money{Amount: 299, Currency: "USD"},
		},
		{
			ID:           "tier2_monthly",
			Name:         "Pro Monthly",
			ProductIDs:   []string{"app.polylingo.tier2.monthly"},
			MaxLanguages: 5,
			DailyLimit:   UnlimitedDaily,
			Interval:     BillingIntervalMonthly,
			Price:        Money{Amount: 599, Currency: "USD"},
		},
		{
			ID:           "tier1_yearly",
			Name:         "Standard Yearly",
			ProductIDs:   []string{"app.polylingo.tier1.yearly"},
			MaxLanguages: 3,
			DailyLimit:   300,
			Interval:     BillingIntervalAnnual,
			Price:        Money{Amount: 2499, Currency: "USD"},
		},
		{
			ID:           "tier2_yearly",
			Name:         "Pro Yearly",
			ProductIDs:   []string{"app.polylingo.tier2.yearly"},
			MaxLanguages: 5,
			DailyLimit:   UnlimitedDaily,
			Interval:     BillingIntervalAnnual,
			Price:        Money{Amount: 4999, Currency: "USD"},
		},
	}
}
