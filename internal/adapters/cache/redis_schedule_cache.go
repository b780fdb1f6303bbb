package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"vrp-client/internal/platform/obs"
	"vrp-client/internal/ports"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "vrp:schedule:"

// RedisScheduleCache keeps raw schedule responses in Redis with a TTL.
type RedisScheduleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisScheduleCache(rdb *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{rdb: rdb, ttl: ttl}
}

// NewRedisScheduleCacheFromURL parses a redis:// URL and connects lazily.
func NewRedisScheduleCacheFromURL(url string, ttl time.Duration) (*RedisScheduleCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis schedule cache: parse url: %w", err)
	}
	return NewRedisScheduleCache(redis.NewClient(opt), ttl), nil
}

func (c *RedisScheduleCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "schedule.cache.Get")(&err)

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get schedule cache: key must not be empty")
	}

	b, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get schedule cache: %w", err)
	}
	return b, true, nil
}

// Put stores body under key. A zero TTL keeps the entry until evicted.
func (c *RedisScheduleCache) Put(ctx context.Context, key string, body []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("insert schedule cache: key must not be empty")
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert schedule cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisScheduleCache) Close() error { return c.rdb.Close() }

var _ ports.ScheduleCache = (*RedisScheduleCache)(nil)
