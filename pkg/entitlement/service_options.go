package entitlement

import (
	"log/slog"
	"time"

	"github.com/JayKim88/polylingo-entitlements/pkg/usage"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNotifier sets the out-of-band event sink; defaults to NopNotifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithDeviceMeter attaches the on-device free-tier meter. Without one,
// free users without a purchase are metered through the snapshot like
// everyone else.
func WithDeviceMeter(m *usage.Meter) Option {
	return func(s *Service) {
		s.meter = m
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithThrottleInterval overrides the minimum spacing between full
// reconcile passes.
func WithThrottleInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.throttleInterval = d
		}
	}
}

// WithInitRetryDelay overrides the pause before the single billing
// connection retry.
func WithInitRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.initRetryDelay = d
		}
	}
}

// WithRestoreTimeout overrides how long a restore waits on the platform
// store before giving up.
func WithRestoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.restoreTimeout = d
		}
	}
}
