package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"creator-ledger/core/config"
	"creator-ledger/core/constants"
	"creator-ledger/core/logger"

	"github.com/redis/go-redis/v9"
)

// retention bounds how long Redis keeps an entry regardless of what readers consider fresh.
const retention = 24 * time.Hour

type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: constants.RedisKeyCache, now: time.Now}
}

func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		logger.Error("RedisStore:Get", "key", key, "error", err)
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	raw, err := json.Marshal(Entry{Value: value, StoredAt: r.now().UTC()})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, retention).Err(); err != nil {
		logger.Error("RedisStore:Put", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *RedisStore) HasFresh(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	e, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return fresh(e, ttl, r.now()), nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
