// Package store provides a generic keyed record store with in-memory and
// Redis implementations sharing the [Store] interface.
//
// Use [NewMemory] in tests and single-instance deployments, [NewRedis] when
// several processes share state:
//
//	users := store.NewMemory[User](nil)
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	users := store.NewRedis[User](client, nil, store.WithPrefix("users"))
//
// # Writes
//
// Put overwrites, Insert claims a free key and Update runs a read-modify-write
// atomically (a mutex in memory, WATCH/MULTI in Redis):
//
//	err := movies.Update(ctx, userID, func(list []Movie, _ bool) ([]Movie, error) {
//	    return append(list, movie), nil
//	})
//
// # Errors
//
//   - [ErrNotFound]: key does not exist
//   - [ErrExists]: Insert on a taken key
//   - [ErrConflict]: Update kept losing to concurrent writers
//   - [ErrMarshal], [ErrUnmarshal]: serialization failed
package store
