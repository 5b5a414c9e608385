package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/conduit/pkg/cookie"
	"github.com/dmitrymomot/conduit/pkg/health"
	"github.com/dmitrymomot/conduit/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App is a dispatch table: routes mapped to controller actions, wrapped in
// lifecycle hooks, with a view renderer at the end of the pipeline.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router        chi.Router
	registry      *registry
	renderer      Renderer
	healthConfig  *healthConfig
	metrics       *metrics
	logger        *slog.Logger
	cookieManager *cookie.Manager
	routeTable    Routes
	controllers   Controllers
	lifecycles    Lifecycles
	defaults      Bag
	middlewares   []Middleware
	staticRoutes  []staticRoute
	routes        []Route
	errs          []error
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New builds the dispatch table from the given options.
// A route with malformed notation, or any other invalid route declaration,
// fails here, before anything is served.
//
// Example:
//
//	app, err := conduit.New(
//	    conduit.WithRoutes(conduit.Routes{
//	        "GET /login":  "desktop:security.login",
//	        "POST /login": "desktop:security.processLogin",
//	    }),
//	    conduit.WithControllers(controllers),
//	    conduit.WithLifecycles(lifecycles),
//	    conduit.WithRenderer(views),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.NewNope(), // Default: noop logger (before options)
		cookieManager: cookie.New(),     // Default: cookie manager (no secret)
		routeTable:    make(Routes),
	}

	for _, opt := range opts {
		opt(a)
	}
	if len(a.errs) > 0 {
		return nil, errors.Join(a.errs...)
	}

	a.registry = newRegistry(a.controllers, a.lifecycles)
	if err := a.setupRoutes(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// Routes returns the registered routes in registration order.
func (a *App) Routes() []Route {
	return slices.Clone(a.routes)
}

// setupRoutes configures middleware, static files, operational endpoints
// and the dispatch table, in that order.
func (a *App) setupRoutes() error {
	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Static files are matched before the dispatch table so they never
	// reach the not-found detector.
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	if a.metrics != nil {
		a.router.Method(http.MethodGet, a.metrics.path, a.metrics.handler())
	}

	if err := a.buildDispatchTable(a.routeTable); err != nil {
		return err
	}

	a.router.NotFound(a.unmatchedHandler)
	a.router.MethodNotAllowed(a.unmatchedHandler)
	return nil
}

// adaptMiddleware converts a Middleware to chi middleware.
// Errors that escape the middleware chain are answered by respondMiddlewareError.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			r, _ = withDispatchSlot(r)
			c := newContext(w, r, a)
			if err := mw(nextFunc)(c); err != nil {
				a.respondMiddlewareError(c, err)
			}
		})
	}
}

// respondMiddlewareError answers an error returned by middleware, which
// happens outside the lifecycle error chain.
func (a *App) respondMiddlewareError(c Context, err error) {
	c.LogError("middleware error", "error", err)
	if c.Written() {
		return
	}
	code := StatusCode(err)
	_ = c.String(code, http.StatusText(code))
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	conduit.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
