// Command example is a small movie list application built with conduit.
//
// It has two subsystems: "desktop" serves HTML pages (login, sign-up and
// the movie list) and "api" serves the JSON endpoints the page calls.
// Data is kept in memory, or in Redis when REDIS_URL is set.
//
//	cp .env.example .env
//	go run ./example
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/middlewares"
	"github.com/dmitrymomot/conduit/pkg/logger"
	"github.com/dmitrymomot/conduit/pkg/redis"
	"github.com/dmitrymomot/conduit/pkg/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithConfig(cfg.Log, middlewares.RequestIDExtractor(), conduit.DispatchExtractor())
	ctx := context.Background()

	var (
		svc        services
		healthOpts []conduit.HealthOption
		runOpts    = []conduit.RunOption{
			conduit.Logger(log),
			conduit.ShutdownTimeout(cfg.ShutdownTimeout),
		}
	)

	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return err
		}
		svc = services{
			users: service.NewUsers(
				store.NewRedis[service.User](client, nil, store.WithPrefix("users")),
				store.NewRedis[string](client, nil, store.WithPrefix("usernames")),
			),
			movies: service.NewMovies(store.NewRedis[[]service.Movie](client, nil, store.WithPrefix("movies"))),
		}
		healthOpts = append(healthOpts, conduit.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, conduit.ShutdownHook(redis.Shutdown(client)))
	} else {
		log.Warn("REDIS_URL not set, data is kept in memory")
		svc = services{
			users:  service.NewUsers(store.NewMemory[service.User](nil), store.NewMemory[string](nil)),
			movies: service.NewMovies(store.NewMemory[[]service.Movie](nil)),
		}
	}

	app, err := newApp(cfg, log, svc, conduit.WithHealthChecks(healthOpts...))
	if err != nil {
		return err
	}

	for _, r := range app.Routes() {
		log.Debug("route", slog.String("method", r.Method), slog.String("path", r.Path), slog.String("handler", r.Notation))
	}

	return app.Run(cfg.Addr, runOpts...)
}
