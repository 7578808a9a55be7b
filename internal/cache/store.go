package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// envelope is the stored shape of every expiring entry.
type envelope struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"` // epoch millis
}

// Store wraps a Substrate with a value+expiry envelope. It holds no state
// of its own between calls; all side effects land in the substrate.
// Substrate failures are logged and absorbed, caching is best-effort.
type Store struct {
	substrate Substrate
	logger    *zap.Logger
	now       func() time.Time
}

func NewStore(substrate Substrate, logger *zap.Logger) *Store {
	return &Store{
		substrate: substrate,
		logger:    logger,
		now:       time.Now,
	}
}

// Put stores value under key for ttl. An existing entry is overwritten.
// ttl <= 0 stores an entry that is already expired; Get will treat it as
// a miss.
func (s *Store) Put(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to encode cache value",
			zap.String("key", key),
			zap.Error(err))
		return
	}

	data, err := json.Marshal(envelope{
		Value:  raw,
		Expiry: s.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		s.logger.Warn("Failed to encode cache envelope",
			zap.String("key", key),
			zap.Error(err))
		return
	}

	if err := s.substrate.Set(ctx, key, data); err != nil {
		s.logger.Warn("Failed to write cache entry",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Get loads the entry under key into dest and reports whether a fresh
// value was found. Expired and undecodable entries count as misses and
// are removed as a side effect. Get never fails: substrate errors are
// logged and reported as misses.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.substrate.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("Failed to read cache entry",
				zap.String("key", key),
				zap.Error(err))
		}
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("Removing corrupt cache entry",
			zap.String("key", key),
			zap.Error(err))
		s.Remove(ctx, key)
		return false
	}

	if s.now().UnixMilli() >= env.Expiry {
		s.Remove(ctx, key)
		return false
	}

	if err := json.Unmarshal(env.Value, dest); err != nil {
		s.logger.Warn("Removing undecodable cache entry",
			zap.String("key", key),
			zap.Error(err))
		s.Remove(ctx, key)
		return false
	}

	return true
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.substrate.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn("Failed to delete cache entry",
			zap.String("key", key),
			zap.Error(err))
	}
}
