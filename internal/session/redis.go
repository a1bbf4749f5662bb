package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a redis-backed session store, for deployments where
// several tools share one credential.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "dashboard:session:"
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *redisStore) key(name string) string {
	return s.prefix + name
}

func (s *redisStore) Save(ctx context.Context, token string, expiresAt int64) error {
	expiry := time.Until(time.UnixMilli(expiresAt))
	if expiry <= 0 {
		return s.Clear(ctx)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(TokenKey), token, expiry)
	pipe.Set(ctx, s.key(ExpiryKey), strconv.FormatInt(expiresAt, 10), expiry)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Load(ctx context.Context) (string, int64, error) {
	vals, err := s.client.MGet(ctx, s.key(TokenKey), s.key(ExpiryKey)).Result()
	if err != nil {
		return "", 0, err
	}
	token, _ := vals[0].(string)
	rawExpiry, _ := vals[1].(string)
	if token == "" || rawExpiry == "" {
		return "", 0, nil
	}
	expiresAt, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return "", 0, nil
	}
	return token, expiresAt, nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key(TokenKey), s.key(ExpiryKey)).Err()
}

func (s *redisStore) Close(context.Context) error {
	return s.client.Close()
}
