package jobinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the lock only if it is still held by the caller
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a single-holder lease on a Redis key
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewRedisLocker creates a locker for key. Each process gets its own token.
func NewRedisLocker(client *redis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.NewString(),
	}
}

// TryLock acquires the lease if nobody else holds it
func (l *RedisLocker) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.key, err)
	}
	return ok, nil
}

// Unlock releases the lease if this process still holds it
func (l *RedisLocker) Unlock(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
