package usage

import "errors"

var (
	ErrNilStore         = errors.New("usage state store is required")
	ErrEmptyFingerprint = errors.New("device fingerprint is required")
	ErrInvalidAmount    = errors.New("usage increment must be positive")

	ErrStateNotFound  = errors.New("usage state not found")
	ErrStateCorrupted = errors.New("usage state is corrupted")
	ErrNilState       = errors.New("nil usage state provided")
)
