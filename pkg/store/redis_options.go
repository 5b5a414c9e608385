package store

import "time"

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix      string
	maxRetries  int
	readTimeout time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{maxRetries: 10, readTimeout: 5 * time.Second}
}

// WithPrefix namespaces every key as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithMaxRetries sets how many times Update retries a transaction that lost
// a race with another writer. Default: 10.
func WithMaxRetries(n int) RedisOption {
	return func(o *redisOptions) {
		if n > 0 {
			o.maxRetries = n
		}
	}
}

// WithReadTimeout bounds the round trip Get shares between concurrent
// callers of the same key. Default: 5s.
func WithReadTimeout(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		if d > 0 {
			o.readTimeout = d
		}
	}
}
