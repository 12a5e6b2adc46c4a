package snapshot

import "time"

// PlanFree is the plan every user holds in the absence of a validated,
// unexpired purchase. The free plan is always active and never expires.
const PlanFree = "free"

// DayFormat is the calendar-day layout used for daily usage bookkeeping.
// Days are computed in the device's local time zone: the user's quota
// resets at their midnight, not at UTC midnight.
const DayFormat = "2006-01-02"

// DailyUsage tracks translation units consumed during one calendar day.
// Count is fractional: a single translation into N target languages on a
// plan allowing at most M languages consumes N/M units.
type DailyUsage struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// Snapshot is the authoritative entitlement record. Exactly one snapshot is
// authoritative locally at any time; it is mutated only through the
// reconciler's commit path. JSON field names match the mobile cache blob.
type Snapshot struct {
	PlanID      string     `json:"planId"`
	IsActive    bool       `json:"isActive"`
	StartDate   int64      `json:"startDate"` // epoch millis
	EndDate     int64      `json:"endDate"`   // epoch millis; 0 means no expiry
	DailyUsage  DailyUsage `json:"dailyUsage"`
	IsTrialUsed bool       `json:"isTrialUsed"`

	// OriginalTransactionID is the purchase-store-issued identifier of the
	// purchase backing this snapshot. Empty for pure free/no-purchase users.
	OriginalTransactionID string `json:"originalTransactionId,omitempty"`
}

// Day formats t as a calendar-day string in t's location.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// NewFree returns the default snapshot for a user without any purchase.
func NewFree(now time.Time) *Snapshot {
	return &Snapshot{
		PlanID:     PlanFree,
		IsActive:   true,
		StartDate:  now.UnixMilli(),
		DailyUsage: DailyUsage{Date: Day(now)},
	}
}

// IsExpiredAt reports whether the snapshot's entitlement window has passed.
// A zero EndDate means no expiry.
func (s *Snapshot) IsExpiredAt(now time.Time) bool {
	return s.EndDate > 0 && now.UnixMilli() > s.EndDate
}

// Clone returns a copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	return &c
}

// Normalized returns a copy of the snapshot adjusted for the passage of
// time, applied on every read so stale cached state never grants
// entitlement:
//
//   - A snapshot whose EndDate lies in the past is coerced to the free plan
//     even before any network reconciliation has run. Usage, the trial flag
//     and the transaction id are preserved; only the entitlement is revoked.
//   - DailyUsage is reset to zero when the stored calendar day differs from
//     the current device-local day.
func (s *Snapshot) Normalized(now time.Time) *Snapshot {
	c := s.Clone()

	if c.IsExpiredAt(now) {
		c.PlanID = PlanFree
		c.IsActive = true
		c.EndDate = 0
	}

	if c.DailyUsage.Date != Day(now) {
		c.DailyUsage = DailyUsage{Date: Day(now)}
	}

	return c
}
