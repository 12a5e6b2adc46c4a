package remote

import "time"

// Config holds connection settings for the remote subscription/usage store.
type Config struct {
	ConnectionString  string        `env:"REMOTE_DB_URL,required"`                      // Postgres connection string
	MaxOpenConns      int32         `env:"REMOTE_DB_MAX_OPEN_CONNS" envDefault:"10"`    // maximum open connections
	MaxIdleConns      int32         `env:"REMOTE_DB_MAX_IDLE_CONNS" envDefault:"5"`     // minimum idle connections
	HealthCheckPeriod time.Duration `env:"REMOTE_DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"REMOTE_DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"REMOTE_DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"REMOTE_DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REMOTE_DB_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsPath  string `env:"REMOTE_DB_MIGRATIONS_PATH" envDefault:"pkg/remote/migrations"`
	MigrationsTable string `env:"REMOTE_DB_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
