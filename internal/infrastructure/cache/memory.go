package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory bounds. Expired entries and finished windows are swept at most
// once per memorySweepInterval; past memoryMaxKeys arbitrary keys are
// evicted.
const (
	memorySweepInterval = time.Minute
	memoryMaxKeys       = 50_000
)

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCache is an in-process Store used when Redis is disabled. Entries
// expire on read and in periodic sweeps run from the write paths.
type MemoryCache struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	windows   map[string]*memoryWindow
	now       func() time.Time
	lastSweep time.Time
	maxKeys   int
}

// NewMemory creates an empty in-process cache
func NewMemory() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
		maxKeys: memoryMaxKeys,
	}
}

// sweepLocked drops expired entries and finished windows, then evicts down
// to maxKeys. c.mu must be held.
func (c *MemoryCache) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) >= memorySweepInterval {
		c.lastSweep = now
		for k, e := range c.entries {
			if e.expired(now) {
				delete(c.entries, k)
			}
		}
		for k, w := range c.windows {
			if !now.Before(w.resetAt) {
				delete(c.windows, k)
			}
		}
	}
	for k := range c.entries {
		if len(c.entries) <= c.maxKeys {
			break
		}
		if !strings.HasPrefix(k, KeyLockPrefix) {
			delete(c.entries, k)
		}
	}
	for k := range c.windows {
		if len(c.windows) <= c.maxKeys {
			break
		}
		delete(c.windows, k)
	}
}

// Len reports how many entries and rate-limit windows are held
func (c *MemoryCache) Len() (entries, windows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), len(c.windows)
}

// Get retrieves a value; a missing or expired key returns ErrMiss
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value; ttl <= 0 means no expiry
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
	c.sweepLocked(now)
	return nil
}

// Delete removes keys
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// CheckRateLimit counts a request against a fixed window for key
func (c *MemoryCache) CheckRateLimit(_ context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	c.sweepLocked(now)

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= limit, remaining, w.resetAt, nil
}

// AcquireLock takes lockKey unless another holder has it and it has not
// expired
func (c *MemoryCache) AcquireLock(_ context.Context, lockKey string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := KeyLockPrefix + lockKey
	if e, ok := c.entries[key]; ok && !e.expired(c.now()) {
		return false, nil
	}
	e := memoryEntry{value: []byte("locked")}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return true, nil
}

// RefreshLock extends lockKey while it is still held
func (c *MemoryCache) RefreshLock(_ context.Context, lockKey string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := KeyLockPrefix + lockKey
	now := c.now()
	e, ok := c.entries[key]
	if !ok || e.expired(now) {
		return false, nil
	}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
	return true, nil
}

// ReleaseLock frees lockKey
func (c *MemoryCache) ReleaseLock(ctx context.Context, lockKey string) error {
	return c.Delete(ctx, KeyLockPrefix+lockKey)
}

// Close drops all entries
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	c.windows = make(map[string]*memoryWindow)
	return nil
}
