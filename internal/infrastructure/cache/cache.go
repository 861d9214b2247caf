package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired
var ErrMiss = errors.New("cache miss")

// Key namespaces
const (
	KeyVerdictPrefix   = "verdict:"
	KeyRateLimitPrefix = "rate_limit:"
	KeyLockPrefix      = "lock:"
)

// Store is the cache surface shared by Redis and the in-process fallback
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error)
	Close() error
}

// Locker is a best-effort mutual exclusion shared between processes
type Locker interface {
	AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
	// RefreshLock extends a lock this process holds. held is false when
	// the lock expired or was taken by someone else.
	RefreshLock(ctx context.Context, lockKey string, ttl time.Duration) (held bool, err error)
}

var (
	_ Store  = (*RedisCache)(nil)
	_ Store  = (*MemoryCache)(nil)
	_ Locker = (*RedisCache)(nil)
	_ Locker = (*MemoryCache)(nil)
)
