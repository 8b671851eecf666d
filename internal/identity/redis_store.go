package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisStore struct {
	client  redisKV
	key     string
	timeout time.Duration
}

// NewRedisStore guarda el client id en Redis bajo prefix+StorageKey, sin TTL.
func NewRedisStore(client *redis.Client, prefix string) Store {
	if client == nil {
		return nil
	}
	return newRedisStore(client, prefix)
}

func newRedisStore(client redisKV, prefix string) *redisStore {
	if prefix == "" {
		prefix = "chat:"
	}
	return &redisStore{
		client:  client,
		key:     prefix + StorageKey,
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisStore) Get(ctx context.Context) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	id, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, !blank(id), nil
}

func (s *redisStore) SetIfAbsent(ctx context.Context, id string) (string, error) {
	setCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	stored, err := s.client.SetNX(setCtx, s.key, id, 0).Result()
	if err != nil {
		return "", err
	}
	if stored {
		return id, nil
	}
	current, ok, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return current, nil
	}
	// La clave existe pero esta en blanco: se reemplaza.
	overwriteCtx, cancelOverwrite := context.WithTimeout(ctx, s.timeout)
	defer cancelOverwrite()
	if err := s.client.Set(overwriteCtx, s.key, id, 0).Err(); err != nil {
		return "", err
	}
	return id, nil
}
