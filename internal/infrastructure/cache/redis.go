package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/refdata/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ListCache is a best-effort read cache for list responses. Cache
// failures never fail the request; callers fall through to the
// database on a miss or an error.
type ListCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewListCache creates a ListCache backed by a new Redis client
func NewListCache(cfg config.RedisConfig, logger *zap.Logger) (*ListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewListCacheWithClient(client, cfg.CacheTTL, logger), nil
}

// NewListCacheWithClient creates a ListCache with an existing client,
// useful for testing or sharing a client across components
func NewListCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "refdata:list:",
		logger:    logger,
	}
}

// Get fetches a cached value into dest; ok reports a hit
func (c *ListCache) Get(ctx context.Context, key string, dest any) bool {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a value under key with the configured TTL
func (c *ListCache) Set(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix drops every cached entry whose key starts with the
// given resource prefix. Writes call this so stale pages never outlive
// a mutation by more than the scan.
func (c *ListCache) InvalidatePrefix(ctx context.Context, prefix string) {
	pattern := c.keyPrefix + prefix + "*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *ListCache) Close() error {
	return c.client.Close()
}
