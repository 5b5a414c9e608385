package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/conduit/pkg/logger"
)

// Config is read from the environment, after loading .env if present.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	CookieSecret    string        `env:"COOKIE_SECRET,required"`
	SecureCookies   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RedisURL        string        `env:"REDIS_URL"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	Log logger.Config
}

func loadConfig() (Config, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if len(cfg.CookieSecret) < 32 {
		return Config{}, errors.New("load config: COOKIE_SECRET must be at least 32 bytes")
	}
	return cfg, nil
}
