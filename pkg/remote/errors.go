package remote

import "errors"

var (
	ErrNotFound = errors.New("remote record not found")

	ErrFailedToParseDBConfig    = errors.New("failed to parse remote database config")
	ErrFailedToOpenDBConnection = errors.New("failed to open remote database connection")
	ErrFailedToApplyMigrations  = errors.New("failed to apply remote database migrations")
	ErrMigrationPathNotProvided = errors.New("migrations path not provided")
	ErrMigrationsDirNotFound    = errors.New("migrations directory not found")

	ErrUpsertFailed = errors.New("remote upsert failed")
	ErrQueryFailed  = errors.New("remote query failed")
)
