package tablelock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "table-lock:"
	defaultTTL        = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
)

// Удаляем ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisOptions настройки распределенной блокировки
type RedisOptions struct {
	KeyPrefix  string
	TTL        time.Duration
	RetryDelay time.Duration
}

// RedisLocker блокировки столов, разделяемые между несколькими экземплярами сервиса
type RedisLocker struct {
	client     redis.UniversalClient
	keyPrefix  string
	ttl        time.Duration
	retryDelay time.Duration
}

// NewRedisLocker создает распределенный локер. Нулевые поля opts заменяются значениями по умолчанию.
func NewRedisLocker(client redis.UniversalClient, opts RedisOptions) *RedisLocker {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &RedisLocker{
		client:     client,
		keyPrefix:  opts.KeyPrefix,
		ttl:        opts.TTL,
		retryDelay: opts.RetryDelay,
	}
}

// Lock берет SET NX PX по каждому столу в порядке возрастания id
func (l *RedisLocker) Lock(ctx context.Context, ids ...int64) (UnlockFunc, error) {
	token := uuid.NewString()
	keys := make([]string, 0, len(ids))

	release := func() {
		// Контекст запроса может быть уже отменен, снимаем блокировку отдельным
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for i := len(keys) - 1; i >= 0; i-- {
			_ = releaseScript.Run(releaseCtx, l.client, []string{keys[i]}, token).Err()
		}
	}

	for _, id := range normalize(ids) {
		key := l.key(id)
		if err := l.acquire(ctx, key, token); err != nil {
			release()
			return nil, err
		}
		keys = append(keys, key)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return lockTimeout(ctx)
			}
			return fmt.Errorf("tablelock: redis SETNX %s: %w", key, err)
		}
		if ok {
			return nil
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lockTimeout(ctx)
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) key(id int64) string {
	return fmt.Sprintf("%s%d", l.keyPrefix, id)
}
