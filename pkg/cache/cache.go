// Package cache provides an optional Redis-backed cache for query
// results. When no Redis server is reachable the cache degrades to a
// no-op so callers never need to branch on availability.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/logpilot/logpilot/pkg/parser"
)

const (
	// DefaultTTL is how long cached query results live.
	DefaultTTL = 5 * time.Minute

	keyPrefix = "logpilot:cache:"
)

// QueryCache stores parsed query results keyed by file path and query
// parameters. All operations are safe to call when the cache is
// unavailable.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// Option configures a QueryCache.
type Option func(*QueryCache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *QueryCache) {
		c.ttl = ttl
	}
}

// WithLogger sets the logger used for cache warnings.
func WithLogger(log *zap.Logger) Option {
	return func(c *QueryCache) {
		c.log = log
	}
}

// New connects to the Redis server at url (for example
// "redis://localhost:6379/0"). If the URL is invalid or the server does
// not respond to a ping, the returned cache is disabled rather than
// failing the caller.
func New(ctx context.Context, url string, opts ...Option) *QueryCache {
	c := &QueryCache{ttl: DefaultTTL, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if url == "" {
		return c
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		c.log.Warn("invalid cache URL, caching disabled", zap.String("url", url), zap.Error(err))
		return c
	}
	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.log.Warn("cache unreachable, caching disabled", zap.String("addr", redisOpts.Addr), zap.Error(err))
		_ = client.Close()
		return c
	}

	c.client = client
	return c
}

// Available reports whether a Redis backend is connected.
func (c *QueryCache) Available() bool {
	return c.client != nil
}

// Close releases the Redis connection.
func (c *QueryCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Key derives a stable cache key from the file path and query
// parameters. Identical inputs always produce the same key.
func Key(path string, params map[string]string) string {
	payload, _ := json.Marshal(struct {
		Path   string            `json:"path"`
		Params map[string]string `json:"params,omitempty"`
	}{Path: path, Params: params})
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:])[:32]
}

// Get returns the cached records for key, or ok=false on a miss or
// when the cache is disabled.
func (c *QueryCache) Get(ctx context.Context, key string) ([]parser.Record, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	var records []parser.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return records, true
}

// Set stores records under key with the configured TTL. Failures are
// logged and absorbed.
func (c *QueryCache) Set(ctx context.Context, key string, records []parser.Record) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes a single cache entry.
func (c *QueryCache) Invalidate(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidating cache key %s: %w", key, err)
	}
	return nil
}

// Flush removes every logpilot cache entry.
func (c *QueryCache) Flush(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("flushing cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("flushing cache: %w", err)
	}
	return nil
}
