package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	data       []byte
	storedAt   time.Time
	persistent bool
}

// Memory is an in-process Substrate. Capacity is bounded: once maxEntries
// is reached the oldest entry is evicted, and a background sweep drops
// entries older than maxAge. The bound also caps the key cardinality of
// free-text search caching.
type Memory struct {
	mu            sync.RWMutex
	entries       map[string]memoryEntry
	maxEntries    int
	maxAge        time.Duration
	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
	logger        *zap.Logger
}

// NewMemory creates a Memory substrate and starts its sweep loop.
// maxEntries <= 0 means unbounded; maxAge <= 0 disables the sweep.
func NewMemory(maxEntries int, maxAge, sweepInterval time.Duration, logger *zap.Logger) *Memory {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	m := &Memory{
		entries:       make(map[string]memoryEntry),
		maxEntries:    maxEntries,
		maxAge:        maxAge,
		sweepInterval: sweepInterval,
		stopSweep:     make(chan struct{}),
		logger:        logger,
	}

	go m.startSweep()

	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.data, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	return m.set(ctx, key, value, false)
}

// SetPersistent stores an entry that the sweep and eviction never touch.
func (m *Memory) SetPersistent(ctx context.Context, key string, value []byte) error {
	return m.set(ctx, key, value, true)
}

func (m *Memory) set(_ context.Context, key string, value []byte, persistent bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxEntries > 0 {
		if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
	}

	m.entries[key] = memoryEntry{data: value, storedAt: time.Now(), persistent: persistent}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Len reports the current number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stop halts the background sweep. Safe to call more than once.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopSweep)
	})
}

// evictOldest removes the non-persistent entry with the oldest store
// time. Caller holds the write lock.
func (m *Memory) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range m.entries {
		if entry.persistent {
			continue
		}
		if oldestKey == "" || entry.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.storedAt
		}
	}

	if oldestKey != "" {
		delete(m.entries, oldestKey)
		m.logger.Debug("Evicted oldest cache entry",
			zap.String("key", oldestKey),
			zap.Time("stored_at", oldestTime))
	}
}

func (m *Memory) startSweep() {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *Memory) sweep() {
	if m.maxAge <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.maxAge)
	swept := 0

	for key, entry := range m.entries {
		if !entry.persistent && entry.storedAt.Before(cutoff) {
			delete(m.entries, key)
			swept++
		}
	}

	if swept > 0 {
		m.logger.Debug("Swept aged cache entries", zap.Int("count", swept))
	}
}
