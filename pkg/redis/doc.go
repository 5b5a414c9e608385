// Package redis opens go-redis clients for the store and health packages.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"),
//	    redis.WithPool(20, 4),
//	    redis.WithRetry(5, time.Second),
//	    redis.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	app, err := conduit.New(
//	    conduit.WithHealthChecks(
//	        conduit.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    ),
//	)
//	...
//	app.Run(":8080", conduit.ShutdownHook(redis.Shutdown(client)))
//
// Open accepts redis:// and rediss:// (TLS) URLs and pings the server,
// retrying with a linearly growing wait before giving up with
// [ErrConnectionFailed].
package redis
