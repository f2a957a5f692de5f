package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss возвращается, когда ключа нет в кэше
	ErrCacheMiss = errors.New("cache: miss")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("cache: redis error")
)

// RedisCache кэш сырых значений в Redis
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache создает кэш; все ключи получают префикс prefix
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get возвращает значение или ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - key=%s: %v", ErrRedis, key, err)
	}
	return value, nil
}

// Set сохраняет значение с TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - key=%s: %v", ErrRedis, key, err)
	}
	return nil
}

// SetIfAbsent сохраняет значение, только если ключа еще нет
// Возвращает false, если ключ уже был записан кем-то другим
func (c *RedisCache) SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: SetIfAbsent - key=%s: %v", ErrRedis, key, err)
	}
	return ok, nil
}

// Delete удаляет ключи
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: Delete - keys=%v: %v", ErrRedis, keys, err)
	}
	return nil
}
