package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tulsagolf/teetimes/config"
)

// RedisStore backs the cache with Redis so several replicas share one set
// of schedule ids and times results. Entry lifetimes are enforced by Redis
// key expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

var _ Store = (*RedisStore)(nil)
