// Package usage meters free-tier translation consumption entirely
// on-device.
//
// It exists for users who have never made a purchase and may never be
// signed into any account: their quota is keyed by an anonymous device
// fingerprint and enforced with a fixed daily cap, independent of any
// server state. The meter must keep working with no network at all, which
// is why it shares no code path with the remote usage sync.
//
// Counts are fractional translation units (see the snapshot package for
// the unit semantics) and reset at the device-local midnight.
package usage
