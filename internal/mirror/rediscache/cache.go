package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/muellerzr/huggingface-hub/internal/config"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

const keyPrefix = "hubmirror:"

type cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a response cache for the mirror.
func New(cfg *config.RedisConfig) (mirror.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cache{client: client, ttl: ttl}, nil
}

// Get treats every Redis failure as a miss; the caller rebuilds the
// response from the store.
func (c *cache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a rendered response under the configured TTL, best effort.
func (c *cache) Set(ctx context.Context, key string, value []byte) {
	_ = c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}

// Flush removes every mirror entry. Other tenants of the Redis database
// are left alone.
func (c *cache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("flush cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	return nil
}
