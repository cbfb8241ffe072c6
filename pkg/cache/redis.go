package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisCache stores JSON documents under "<namespace>:<key>"
type RedisCache struct {
	client    *redis.Client
	namespace string
}

func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.WithField("addr", addr).Info("Connected to Redis")
	return &RedisCache{client: client}, nil
}

func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// WithNamespace shares the connection but prefixes every key with ns
func (r *RedisCache) WithNamespace(ns string) *RedisCache {
	return &RedisCache{client: r.client, namespace: ns}
}

func (r *RedisCache) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

func (r *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key(key), err)
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// GetJSON decodes the stored document into dest. A positive ttl also
// pushes the key's expiry forward in the same transaction.
func (r *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}, ttl time.Duration) error {
	var get *redis.StringCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, r.key(key))
		if ttl > 0 {
			pipe.Expire(ctx, r.key(key), ttl)
		}
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(get.Val()), dest)
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Ping reports whether the server is reachable
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
