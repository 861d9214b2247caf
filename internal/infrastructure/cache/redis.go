package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"scamshield/internal/config"
	"scamshield/pkg/logger"
)

// releaseScript deletes a lock only while it still holds our token, so a
// holder whose TTL ran out cannot free a lock someone else took since
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisCache is the shared Store used when several gateway replicas run
// against one Redis
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger

	// lock key -> token written by AcquireLock
	tokens sync.Map
}

// NewRedis connects to Redis and verifies the connection
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().Msg("connected to Redis")
	return &RedisCache{client: client, keyPrefix: cfg.KeyPrefix, logger: log}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// Ping checks the connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Get retrieves a value; a missing key returns ErrMiss
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}

// Set stores a value; a zero ttl keeps it until evicted
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes keys
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// AcquireLock takes lockKey for ttl if nobody holds it
func (c *RedisCache) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, c.key(KeyLockPrefix+lockKey), token, ttl).Result()
	if err != nil || !ok {
		return false, err
	}
	c.tokens.Store(lockKey, token)
	return true, nil
}

// RefreshLock resets lockKey's TTL if this process still owns it
func (c *RedisCache) RefreshLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	token, ok := c.tokens.Load(lockKey)
	if !ok {
		return false, nil
	}
	n, err := refreshScript.Run(ctx, c.client, []string{c.key(KeyLockPrefix + lockKey)}, token, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to refresh lock %q: %w", lockKey, err)
	}
	return n == 1, nil
}

// ReleaseLock frees lockKey if this process still owns it
func (c *RedisCache) ReleaseLock(ctx context.Context, lockKey string) error {
	token, ok := c.tokens.LoadAndDelete(lockKey)
	if !ok {
		return nil
	}
	n, err := releaseScript.Run(ctx, c.client, []string{c.key(KeyLockPrefix + lockKey)}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %q: %w", lockKey, err)
	}
	if n == 0 {
		c.logger.Warn().Str("lock", lockKey).Msg("lock expired before release")
	}
	return nil
}

// CheckRateLimit counts one hit against key in a fixed window and reports
// whether it is within limit, the hits left and when the window resets
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	bucket := time.Now().UnixNano() / int64(window)
	windowKey := c.key(fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, bucket))

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := max(limit-count, 0)
	return count <= limit, remaining, time.Unix(0, (bucket+1)*int64(window)), nil
}
