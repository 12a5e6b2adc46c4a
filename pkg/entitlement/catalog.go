package entitlement

import (
	"context"
	"errors"
	"fmt"
)

// Catalog is an immutable, validated view over a loaded plan set. It
// answers both plan-id and store-product-id lookups; the product index is
// built once at construction so hot-path lookups never scan.
type Catalog struct {
	plans     map[string]Plan
	byProduct map[string]Plan
}

// NewCatalog loads plans from the source and validates the result. The
// catalog must contain the free plan, every plan must allow at least one
// target language, and no product id may map to two plans.
func NewCatalog(ctx context.Context, source Source) (*Catalog, error) {
	if source == nil {
		panic("entitlement: source is required")
	}

	plans, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := plans[PlanFree]; !ok {
		return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("missing %q plan", PlanFree))
	}

	byProduct := make(map[string]Plan)
	for id, plan := range plans {
		if plan.ID != id {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan keyed %q declares id %q", id, plan.ID))
		}
		if plan.MaxLanguages < 1 {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q allows no target languages", id))
		}
		if plan.DailyLimit <= 0 && plan.DailyLimit != UnlimitedDaily {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q has daily limit %v", id, plan.DailyLimit))
		}
		for _, productID := range plan.ProductIDs {
			if prev, dup := byProduct[productID]; dup {
				return nil, errors.Join(ErrInvalidCatalog,
					fmt.Errorf("product %q claimed by plans %q and %q", productID, prev.ID, id))
			}
			byProduct[productID] = plan
		}
	}

	return &Catalog{plans: plans, byProduct: byProduct}, nil
}

// Plan returns the plan with the given id.
func (c *Catalog) Plan(id string) (Plan, error) {
	plan, ok := c.plans[id]
	if !ok {
		return Plan{}, errors.Join(ErrPlanNotFound, fmt.Errorf("plan %q", id))
	}
	return plan, nil
}

// PlanForProduct maps a store product id to its plan.
func (c *Catalog) PlanForProduct(productID string) (Plan, error) {
	plan, ok := c.byProduct[productID]
	if !ok {
		return Plan{}, errors.Join(ErrProductNotFound, fmt.Errorf("product %q", productID))
	}
	return plan, nil
}

// Free returns the free plan. The constructor guarantees it exists.
func (c *Catalog) Free() Plan {
	return c.plans[PlanFree]
}

// ProductIDs returns every product id known to the catalog, for store
// product queries at startup.
func (c *Catalog) ProductIDs() []string {
	ids := make([]string, 0, len(c.byProduct))
	for id := range c.byProduct {
		ids = append(ids, id)
	}
	return ids
}

// UnitCost is the metered cost of a single translation under the plan: a
// request fanning out to n of the plan's MaxLanguages targets consumes
// n/MaxLanguages units. Translating to every allowed language costs
// exactly one unit.
func (c *Catalog) UnitCost(plan Plan, targetLanguages int) float64 {
	if targetLanguages < 1 {
		targetLanguages = 1
	}
	if targetLanguages > plan.MaxLanguages {
		targetLanguages = plan.MaxLanguages
	}
	return float64(targetLanguages) / float64(plan.MaxLanguages)
}
