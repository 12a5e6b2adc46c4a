// Package receipt validates purchase receipts against the remote
// validation backend.
//
// The backend owns the cryptographic verification and the API-key/origin
// checks; this client owns the transport, the hard timeout, and the expiry
// cross-check. Validity requires both an accepting backend reply and an
// unexpired entitlement window.
//
// Timeouts resolve to environment-dependent fallbacks selected by the
// explicit Environment configuration: in production a timed-out validation
// is a failed validation (fail closed), in sandbox it is a lenient pass so
// development builds work without backend connectivity.
package receipt
