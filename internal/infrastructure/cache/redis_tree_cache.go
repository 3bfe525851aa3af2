package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const defaultTreeKeyPrefix = "categories:"

// RedisTreeCache implements the category tree cache using Redis.
// This is suitable for distributed deployments where multiple instances
// share the cached trees.
type RedisTreeCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTreeCache creates a new Redis-backed tree cache and verifies
// the connection.
func NewRedisTreeCache(cfg config.RedisConfig) (*RedisTreeCache, error) {
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

	return &RedisTreeCache{
		client:    client,
		keyPrefix: defaultTreeKeyPrefix,
	}, nil
}

// NewRedisTreeCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisTreeCacheWithClient(client *redis.Client, keyPrefix string) *RedisTreeCache {
	if keyPrefix == "" {
		keyPrefix = defaultTreeKeyPrefix
	}
	return &RedisTreeCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached payload for the key, or nil on a miss
func (c *RedisTreeCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached tree: %w", err)
	}
	return value, nil
}

// Set stores a payload under the key with the given TTL
func (c *RedisTreeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tree: %w", err)
	}
	return nil
}

// Invalidate drops every cached tree under the key prefix
func (c *RedisTreeCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached trees: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached trees: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisTreeCache) Close() error {
	return c.client.Close()
}

// Ensure RedisTreeCache implements TreeCache
var _ appcatalog.TreeCache = (*RedisTreeCache)(nil)
