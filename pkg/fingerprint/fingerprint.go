package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Device describes the stable traits a device fingerprint is derived from.
// None of these change across app reinstalls, which is what makes the
// resulting fingerprint suitable for anonymous usage metering: reinstalling
// the app does not reset the free-tier quota.
type Device struct {
	Platform     string // "ios" or "android"
	OSVersion    string
	ScreenWidth  int
	ScreenHeight int
}

// Generate creates a device fingerprint from the given traits.
// It returns a 32-character hex string (first 16 bytes of a SHA-256 hash).
// Empty traits are skipped so partially known devices still produce a
// stable, if weaker, fingerprint.
func Generate(d Device) string {
	components := []string{
		d.Platform,
		d.OSVersion,
		dimension(d.ScreenWidth),
		dimension(d.ScreenHeight),
	}

	var filtered []string
	for _, comp := range components {
		if comp != "" {
			filtered = append(filtered, comp)
		}
	}

	combined := strings.Join(filtered, "|")
	hash := sha256.Sum256([]byte(combined))

	return hex.EncodeToString(hash[:16])
}

// Validate compares the fingerprint of the given device with a stored one.
func Validate(d Device, stored string) bool {
	return Generate(d) == stored
}

func dimension(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}
