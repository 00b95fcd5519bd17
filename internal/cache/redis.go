package cache

import (
	"context"
	"errors"
	"time"

	"agencylms/internal/utils"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset the catalog needs. Misses and backend errors look the same to callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Incr(ctx context.Context, key string) (int64, error)
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.LogWarn(ctx, "cache", "get", "cache read failed", err)
		}
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		utils.LogWarn(ctx, "cache", "set", "cache write failed", err)
	}
}

func (r *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
