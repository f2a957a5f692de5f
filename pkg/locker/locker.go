package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired блокировка удерживается другим процессом дольше допустимого ожидания
	ErrNotAcquired = errors.New("locker: lock not acquired")

	// ErrRedis ошибка обращения к Redis
	ErrRedis = errors.New("locker: redis error")
)

// releaseScript удаляет ключ, только если он принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseFunc освобождает ранее захваченную блокировку
type ReleaseFunc func()

// Locker распределенная блокировка по ключу
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// Options параметры RedisLocker
type Options struct {
	TTL        time.Duration
	Retries    int
	RetryDelay time.Duration
	KeyPrefix  string
}

// RedisLocker блокировка на SET NX PX
type RedisLocker struct {
	client *redis.Client
	opts   Options
}

func NewRedisLocker(client *redis.Client, opts Options) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 50 * time.Millisecond
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "lock:"
	}
	return &RedisLocker{client: client, opts: opts}
}

// Acquire пытается захватить ключ, повторяя попытки opts.Retries раз
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	fullKey := l.opts.KeyPrefix + key
	token := uuid.NewString()

	for attempt := 0; ; attempt++ {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.opts.TTL).Result()
		if err != nil {
			// отмена запроса не означает недоступность Redis
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("locker: acquire %s: %w", fullKey, ctxErr)
			}
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrRedis, fullKey, err)
		}
		if ok {
			return func() {
				// контекст запроса к этому моменту может быть уже отменен
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
			}, nil
		}

		if attempt >= l.opts.Retries {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, fullKey)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("locker: acquire %s: %w", fullKey, ctx.Err())
		case <-time.After(l.opts.RetryDelay):
		}
	}
}

// NoopLocker используется, когда Redis не настроен
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func() {}, nil
}
