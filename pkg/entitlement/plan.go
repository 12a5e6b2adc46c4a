package entitlement

import "context"

// UnlimitedDaily marks a plan without a daily usage cap.
const UnlimitedDaily float64 = -1

// PlanFree is the id of the tier every user holds without a paid
// subscription. The catalog refuses to load without it.
const PlanFree = "free"

// Money represents a monetary amount in the smallest currency unit.
// For example, $4.99 USD would be Amount: 499, Currency: "USD".
type Money struct {
	Amount   int64  `yaml:"amount"`
	Currency string `yaml:"currency"`
}

// BillingInterval represents the billing frequency for a subscription plan.
type BillingInterval string

const (
	BillingIntervalNone    BillingInterval = "none" // free plan with no billing
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

// Plan describes one subscription tier of the translation app.
//
// MaxLanguages is the number of target languages a single translation may
// address concurrently; it also scales usage metering, so one translation
// into N languages costs N/MaxLanguages units. This keeps metering
// equitable across plans with different concurrency multipliers.
type Plan struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	ProductIDs   []string        `yaml:"productIds"` // platform store product identifiers mapping to this plan
	MaxLanguages int             `yaml:"maxLanguages"`
	DailyLimit   float64         `yaml:"dailyLimit"` // translation units per day; -1 for unlimited
	Interval     BillingInterval `yaml:"interval"`
	Price        Money           `yaml:"price"`
}

// Source defines how plans are loaded into the catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}
