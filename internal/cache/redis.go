package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Substrate backed by a Redis instance, for deployments where
// cached state must survive process restarts. Cache entries are written
// with a retention period so abandoned keys (expired envelopes that are
// never read again, one-off search keywords) age out on the server side
// too; persistent settings are written without one.
type Redis struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewRedis(rdb *redis.Client, retention time.Duration) *Redis {
	return &Redis{rdb: rdb, retention: retention}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, r.retention).Err()
}

// SetPersistent stores an entry without a server-side expiry, for plain
// settings that must outlive the retention window.
func (r *Redis) SetPersistent(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
