package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Redis is a Store backed by Redis.
// Concurrent Gets for the same key share a single round trip.
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	opts      *redisOptions
	reads     singleflight.Group
}

// NewRedis creates a Redis-backed store.
// The client should be obtained from pkg/redis.Open or pkg/redis.MustOpen.
// If m is nil, records are encoded as JSON.
//
// Example:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	users := store.NewRedis[User](client, nil, store.WithPrefix("users"))
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Redis[V]{
		client:    client,
		marshaler: m,
		opts:      o,
	}
}

// Get returns the record at key. The shared round trip is detached from any
// single caller's cancellation and bounded by the read timeout; each caller
// still stops waiting when its own ctx is done.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	k := r.prefixedKey(key)
	ch := r.reads.DoChan(k, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.readTimeout)
		defer cancel()
		return r.client.Get(fetchCtx, k).Bytes()
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, redis.Nil) {
				return zero, ErrNotFound
			}
			return zero, res.Err
		}
		return r.marshaler.Unmarshal(res.Val.([]byte))
	}
}

func (r *Redis[V]) Put(ctx context.Context, key string, value V) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefixedKey(key), data, 0).Err()
}

func (r *Redis[V]) Insert(ctx context.Context, key string, value V) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.prefixedKey(key), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrExists
	}
	return nil
}

// Update runs fn inside an optimistic WATCH/MULTI transaction and retries
// when another client modifies the key in between.
func (r *Redis[V]) Update(ctx context.Context, key string, fn func(V, bool) (V, error)) error {
	k := r.prefixedKey(key)

	txf := func(tx *redis.Tx) error {
		var (
			current V
			found   bool
		)
		data, err := tx.Get(ctx, k).Bytes()
		switch {
		case err == nil:
			if current, err = r.marshaler.Unmarshal(data); err != nil {
				return err
			}
			found = true
		case !errors.Is(err, redis.Nil):
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		out, err := r.marshaler.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, 0)
			return nil
		})
		return err
	}

	for range r.opts.maxRetries {
		err := r.client.Watch(ctx, txf, k)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return ErrConflict
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefixedKey(key)).Err()
}

func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefixedKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes all records under the configured prefix using SCAN.
// Without a prefix it flushes the whole database.
func (r *Redis[V]) Clear(ctx context.Context) error {
	if r.opts.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	pattern := r.opts.prefix + ":*"
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (r *Redis[V]) prefixedKey(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Store[any] = (*Redis[any])(nil)
