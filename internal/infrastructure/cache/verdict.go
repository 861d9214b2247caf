package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

// VerdictCache stores remote URL verdicts, msgpack-encoded, keyed by the
// SHA-256 of the normalized URL. A nil VerdictCache is a permanent miss.
type VerdictCache struct {
	store  Store
	ttl    time.Duration
	logger *logger.Logger
}

// NewVerdictCache wraps store; ttl <= 0 disables caching
func NewVerdictCache(store Store, ttl time.Duration, log *logger.Logger) *VerdictCache {
	if store == nil || ttl <= 0 {
		return nil
	}
	return &VerdictCache{
		store:  store,
		ttl:    ttl,
		logger: log.WithComponent("verdict-cache"),
	}
}

// VerdictKey returns the cache key for a normalized URL. Scheme and host
// are case-insensitive; path and query are not.
func VerdictKey(normalizedURL string) string {
	key := strings.TrimSpace(normalizedURL)
	if u, err := url.Parse(key); err == nil && u.Host != "" {
		u.Scheme = strings.ToLower(u.Scheme)
		u.Host = strings.ToLower(u.Host)
		key = u.String()
	}
	sum := sha256.Sum256([]byte(key))
	return KeyVerdictPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached verdict for normalizedURL, if any
func (c *VerdictCache) Get(ctx context.Context, normalizedURL string) (*models.RemoteScanResponse, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.store.Get(ctx, VerdictKey(normalizedURL))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn().Err(err).Msg("verdict cache read failed")
		}
		return nil, false
	}
	var resp models.RemoteScanResponse
	if err := msgpack.Unmarshal(data, &resp); err != nil {
		c.logger.Warn().Err(err).Msg("discarding undecodable cached verdict")
		return nil, false
	}
	return &resp, true
}

// Put caches a verdict. Failures are logged, never returned.
func (c *VerdictCache) Put(ctx context.Context, normalizedURL string, resp *models.RemoteScanResponse) {
	if c == nil || resp == nil {
		return
	}
	data, err := msgpack.Marshal(resp)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode verdict")
		return
	}
	if err := c.store.Set(ctx, VerdictKey(normalizedURL), data, c.ttl); err != nil {
		c.logger.Warn().Err(err).Msg("verdict cache write failed")
	}
}
