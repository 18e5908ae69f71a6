package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RedisCounter hands out per-millisecond sequence numbers shared by every
// process using the same Redis. Keys expire after ttl.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCounter(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Next increments the counter for prefix at ms and returns the new value,
// starting at 1.
func (c *RedisCounter) Next(ctx context.Context, prefix string, ms int64) (int64, error) {
	k := c.prefix + prefix + ":" + strconv.FormatInt(ms, 10)
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", k, err)
	}
	return incr.Val(), nil
}
