// Package cache is a small freshness-aware key/value abstraction. Entries remember when
// they were written; readers decide how old is too old with HasFresh or GetFresh.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

type Entry struct {
	Value    []byte    `json:"v"`
	StoredAt time.Time `json:"at"`
}

type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	HasFresh(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

func fresh(e Entry, ttl time.Duration, now time.Time) bool {
	return now.Sub(e.StoredAt) <= ttl
}

// GetFresh decodes the entry at key when it is younger than ttl.
func GetFresh[T any](ctx context.Context, s Store, key string, ttl time.Duration, now time.Time) (T, bool, error) {
	var zero T
	e, ok, err := s.Get(ctx, key)
	if err != nil || !ok || !fresh(e, ttl, now) {
		return zero, false, err
	}
	var out T
	if err := json.Unmarshal(e.Value, &out); err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func PutJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, b)
}
