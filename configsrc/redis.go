package configsrc

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed Source.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Key is the Redis key holding the document's raw bytes.
	Key string
}

// Redis fetches a graph document stored as a single Redis string value.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis dials Redis per opts. The caller owns closing the
// connection via Close.
func NewRedis(opts RedisOptions) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{client: client, key: opts.Key}
}

// NewRedisWithClient wraps an already-constructed client, letting tests
// substitute e.g. a miniredis-backed client.
func NewRedisWithClient(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Load implements Source.
func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("configsrc: redis get %q: %w", r.key, err)
	}
	return b, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
