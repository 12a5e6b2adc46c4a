package entitlement

import "errors"

var (
	// ErrFailedToLoadPlans is returned when the plan source cannot produce a catalog.
	ErrFailedToLoadPlans = errors.New("failed to load plans")
	// ErrPlanNotFound is returned when a plan id is not present in the catalog.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrProductNotFound is returned when a store product id maps to no plan.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidCatalog is returned when the loaded plan set violates catalog invariants.
	ErrInvalidCatalog = errors.New("invalid plan catalog")

	// ErrPurchaseCancelled is returned when the user abandons the store purchase flow.
	ErrPurchaseCancelled = errors.New("purchase cancelled")
	// ErrPurchaseFailed is returned when the store rejects a purchase request.
	ErrPurchaseFailed = errors.New("purchase failed")
	// ErrRestoreTimeout is returned when the store does not answer a restore in time.
	ErrRestoreTimeout = errors.New("restore timed out")
	// ErrRestoreInProgress is returned when a restore overlaps a running restore.
	ErrRestoreInProgress = errors.New("restore already in progress")
	// ErrNothingToRestore is returned when the store reports no prior purchases.
	ErrNothingToRestore = errors.New("nothing to restore")
)
