package usage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultDailyLimit is the free-tier daily cap in translation units.
const DefaultDailyLimit = 100.0

// Result is the outcome of one metered increment.
type Result struct {
	Allowed        bool
	RemainingDaily float64
}

// DailyStats describes today's consumption against the cap.
type DailyStats struct {
	Used      float64
	Limit     float64
	Remaining float64
}

// Stats is the full meter view exposed to the UI.
type Stats struct {
	Daily DailyStats
	Total float64
}

// Meter enforces the anonymous free-tier daily cap entirely on-device.
// It is the only entitlement check with zero network dependency: free
// users must be able to translate fully offline.
//
// State is keyed by the device fingerprint. A changed fingerprint (OS
// upgrade, different device) starts a fresh meter rather than failing.
type Meter struct {
	store       StateStore
	fingerprint string
	dailyLimit  float64
	now         func() time.Time
	mu          sync.Mutex
}

// MeterOption configures a Meter.
type MeterOption func(*Meter)

// WithDailyLimit overrides the daily cap.
func WithDailyLimit(limit float64) MeterOption {
	return func(m *Meter) {
		if limit > 0 {
			m.dailyLimit = limit
		}
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) MeterOption {
	return func(m *Meter) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMeter creates a device usage meter for the given fingerprint.
func NewMeter(store StateStore, deviceFingerprint string, opts ...MeterOption) (*Meter, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if deviceFingerprint == "" {
		return nil, ErrEmptyFingerprint
	}

	m := &Meter{
		store:       store,
		fingerprint: deviceFingerprint,
		dailyLimit:  DefaultDailyLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// IncrementWithLimit adds amount translation units to today's counter if
// the daily cap allows it. When the cap would be exceeded nothing is
// recorded and Allowed is false.
func (m *Meter) IncrementWithLimit(ctx context.Context, amount float64) (Result, error) {
	if amount <= 0 {
		return Result{}, ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.loadState(ctx)
	if err != nil {
		return Result{}, err
	}

	if st.Count+amount > m.dailyLimit {
		return Result{Allowed: false, RemainingDaily: m.remaining(st)}, nil
	}

	st.Count += amount
	st.Total += amount
	if err := m.store.Save(ctx, st); err != nil {
		return Result{}, err
	}

	return Result{Allowed: true, RemainingDaily: m.remaining(st)}, nil
}

// GetStats returns today's consumption and the all-time total.
func (m *Meter) GetStats(ctx context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.loadState(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Daily: DailyStats{
			Used:      st.Count,
			Limit:     m.dailyLimit,
			Remaining: m.remaining(st),
		},
		Total: st.Total,
	}, nil
}

// loadState returns today's state for this device, applying fingerprint
// and calendar-day resets. Callers must hold the mutex.
func (m *Meter) loadState(ctx context.Context) (*State, error) {
	today := m.now().Format("2006-01-02")

	st, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return &State{Fingerprint: m.fingerprint, Date: today}, nil
		}
		return nil, err
	}

	if st.Fingerprint != m.fingerprint {
		// Different device identity: fresh meter, fresh total.
		return &State{Fingerprint: m.fingerprint, Date: today}, nil
	}
	if st.Date != today {
		st.Date = today
		st.Count = 0
	}
	return st, nil
}

func (m *Meter) remaining(st *State) float64 {
	return max(m.dailyLimit-st.Count, 0)
}
