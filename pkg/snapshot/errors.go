package snapshot

import "errors"

var (
	ErrNotFound  = errors.New("subscription snapshot not found")
	ErrCorrupted = errors.New("subscription snapshot is corrupted")
	ErrNilValue  = errors.New("nil snapshot provided")

	ErrRedisNotReady                = errors.New("redis server is not ready")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
)
