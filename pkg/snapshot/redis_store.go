package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed snapshot store.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // format "redis://:password@localhost:6379/0"
	Key            string        `env:"SNAPSHOT_CACHE_KEY" envDefault:"polylingo:subscription"`   // fixed key holding the JSON blob
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect establishes a connection to a Redis server using the provided
// configuration, retrying up to RetryAttempts times with RetryInterval
// between attempts. Each successful dial is verified with a ping.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisStore persists the snapshot as a JSON blob under a fixed Redis key.
// Intended for server-side deployments of the engine where the "device" is
// a long-lived backend process rather than a phone.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "polylingo:subscription"
	}
	return &RedisStore{client: client, key: key}
}

func (rs *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := rs.client.Get(ctx, rs.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	return &s, nil
}

func (rs *RedisStore) Save(ctx context.Context, s *Snapshot) error {
	if s == nil {
		return ErrNilValue
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// No TTL: the snapshot is authoritative until explicitly replaced.
	return rs.client.Set(ctx, rs.key, data, 0).Err()
}
