package cache

import (
	"context"
	"time"
)

// FetchWithCache is the get-or-fetch primitive behind every dashboard
// query. A fresh entry under key is returned without calling remote; on a
// miss the remote operation runs and, when it succeeds, its result is
// stored best-effort under key for ttl. Remote failures propagate
// unchanged and are never cached; retries are the caller's concern.
//
// An empty key disables caching entirely, as does ttl <= 0 on the write
// side.
func FetchWithCache[T any](ctx context.Context, store *Store, key string, ttl time.Duration, remote func(context.Context) (T, error)) (T, error) {
	if key != "" {
		var cached T
		if store.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	result, err := remote(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if key != "" && ttl > 0 {
		store.Put(ctx, key, result, ttl)
	}

	return result, nil
}
