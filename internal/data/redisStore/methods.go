package redisStore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	return count > 0, err
}

// SetNX is the lock primitive, true when this caller created the key.
func (s *Store) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, expiration).Result()
}

var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// DelIfEquals removes key only while it still holds value.
func (s *Store) DelIfEquals(ctx context.Context, key string, value string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, s.client, []string{key}, value).Int()
	return n == 1, err
}

var compareAndExpire = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// ExpireIfEquals resets the key's TTL only while it still holds value.
func (s *Store) ExpireIfEquals(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	n, err := compareAndExpire.Run(ctx, s.client, []string{key}, value, ttl.Milliseconds()).Int()
	return n == 1, err
}

// ListPushFrontCapped keeps the newest values first and at most limit entries.
func (s *Store) ListPushFrontCapped(ctx context.Context, key string, value interface{}, limit int64, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, value)
		pipe.LTrim(ctx, key, 0, limit-1)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (s *Store) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.client.LRange(ctx, key, start, stop).Result()
}
