package redisStore

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances   = make(map[string]*Store)
	mu          sync.Mutex
	logger      = logger_i.NewLogger("Redis Store")
	closerStart sync.Once
)

// Store is one client bound to one logical DB. Jobs, recordings and index locks
// each get their own DB so a FLUSHDB on one never touches the others.
type Store struct {
	client *redis.Client
	DB     int
}

type Options struct {
	Addr     string
	Password string
}

func instanceKey(addr string, db int) string {
	return fmt.Sprintf("%s/%d", addr, db)
}

// GetRedisStore returns the cached client for addr+db, creating it on first use.
// It returns nil when redis does not answer a ping, callers fall back to memory.
func GetRedisStore(ctx context.Context, opts Options, db int) *Store {
	key := instanceKey(opts.Addr, db)

	mu.Lock()
	s, ok := instances[key]
	mu.Unlock()
	if ok {
		return s
	}

	// dial without the lock so stores on different DBs come up in parallel
	s = dial(ctx, opts, db)
	if s == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	if existing, ok := instances[key]; ok {
		_ = s.client.Close()
		return existing
	}
	instances[key] = s
	closerStart.Do(func() {
		go closeOnDone(ctx)
	})
	return s
}

func dial(ctx context.Context, opts Options, db int) *Store {
	log := logger.With("addr", opts.Addr, "db", db)
	client := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisIOTimeout,
		WriteTimeout:          config.RedisIOTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("Redis is offline", "error", err)
		_ = client.Close()
		return nil
	}

	log.Info("Redis client ready")
	return &Store{client: client, DB: db}
}

// closeOnDone closes every cached client once the service context ends.
func closeOnDone(ctx context.Context) {
	<-ctx.Done()
	mu.Lock()
	defer mu.Unlock()
	for key, s := range instances {
		if err := s.client.Close(); err != nil {
			logger.Error("Error closing redis client", "instance", key, "error", err)
		}
		delete(instances, key)
	}
	logger.Info("Redis clients closed")
}

// NewTestStore wraps an existing client, used with miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
