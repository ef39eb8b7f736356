package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v9"
)

type RedisStore struct {
	Store
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(redisHostPort string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: redisHostPort,
	})

	return &RedisStore{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *RedisStore) Get(key string) ([]byte, error) {
	if value, err := r.client.Get(r.ctx, key).Result(); err != nil {
		if err == redis.Nil {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("unable to get key %s: %v", key, err)
	} else {
		return []byte(value), nil
	}
}

func (r *RedisStore) Put(key string, value []byte) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *RedisStore) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *RedisStore) Healthy() bool {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return false
	} else {
		return true
	}
}
