package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/data/redisStore"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

const indexLockPrefix = "lock:index:"

// RedisIndexLock is a per key lock shared by every replica pointing at the same redis.
// The TTL bounds how long a crashed holder can block a key. A live holder keeps
// the key alive every ttl/3 until it unlocks, however long the embed and upsert take.
type RedisIndexLock struct {
	store   *redisStore.Store
	ttl     time.Duration
	backoff time.Duration
	logger  *logger_i.Logger
}

func GetRedisIndexLock(ctx context.Context, opts redisStore.Options) *RedisIndexLock {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisLockStore)
	if s == nil {
		return nil
	}
	return NewRedisIndexLock(s, config.IndexLockTTL, config.IndexLockRetryBackoff)
}

func NewRedisIndexLock(s *redisStore.Store, ttl time.Duration, backoff time.Duration) *RedisIndexLock {
	return &RedisIndexLock{store: s, ttl: ttl, backoff: backoff, logger: logger_i.NewLogger("IndexLock")}
}

func (l *RedisIndexLock) Lock(ctx context.Context, key string) (func(), error) {
	token := utils.GetNewUUID()
	redisKey := indexLockPrefix + key

	for {
		ok, err := l.store.SetNX(ctx, redisKey, token, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// the request context may already be done, release regardless
			releaseCtx, cancel := context.WithTimeout(context.Background(), config.RedisPingTimeout)
			defer cancel()
			if _, err := l.store.DelIfEquals(releaseCtx, redisKey, token); err != nil {
				l.logger.Error("could not release index lock", "key", key, "error", err)
			}
		})
	}, nil
}

func (l *RedisIndexLock) keepAlive(redisKey string, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), config.RedisPingTimeout)
			held, err := l.store.ExpireIfEquals(ctx, redisKey, token, l.ttl)
			cancel()
			if err != nil {
				l.logger.Warn("could not refresh index lock", "key", redisKey, "error", err)
				continue
			}
			if !held {
				l.logger.Error("index lock lost before unlock", "key", redisKey)
				return
			}
		}
	}
}
