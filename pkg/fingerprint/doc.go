// Package fingerprint derives a stable, anonymous device identifier from
// platform traits (platform name, OS version, screen dimensions).
//
// The fingerprint is deliberately not a hardware UUID: it survives app
// reinstalls, which keeps the on-device free-tier usage meter honest, while
// carrying no personally identifying information. Two identical devices on
// the same OS version share a fingerprint; that collision is acceptable for
// quota metering and preferable to tracking individuals.
package fingerprint
