package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/conduit/pkg/cookie"
	"github.com/dmitrymomot/conduit/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithRoutes adds route declarations to the dispatch table.
// Later calls override earlier ones for the same key.
//
// Example:
//
//	conduit.WithRoutes(conduit.Routes{
//	    "GET /":                        "desktop:main.default",
//	    "DELETE /api/movies/:movieId":  "api:movies.deleteMovie",
//	})
func WithRoutes(routes Routes) Option {
	return func(a *App) {
		maps.Copy(a.routeTable, routes)
	}
}

// WithRoutesFS loads route declarations from a YAML file in fsys.
//
// Example:
//
//	//go:embed routes.yaml
//	var routesFile embed.FS
//
//	conduit.WithRoutesFS(routesFile, "routes.yaml")
func WithRoutesFS(fsys fs.FS, name string) Option {
	return func(a *App) {
		routes, err := LoadRoutesFS(fsys, name)
		if err != nil {
			a.errs = append(a.errs, err)
			return
		}
		maps.Copy(a.routeTable, routes)
	}
}

// WithControllers registers controllers by subsystem and name.
// Subsystems registered by an earlier call are merged, not replaced.
func WithControllers(controllers Controllers) Option {
	return func(a *App) {
		if a.controllers == nil {
			a.controllers = make(Controllers, len(controllers))
		}
		for subsystem, byName := range controllers {
			dst, ok := a.controllers[subsystem]
			if !ok {
				dst = make(map[string]*Controller, len(byName))
				a.controllers[subsystem] = dst
			}
			maps.Copy(dst, byName)
		}
	}
}

// WithLifecycles registers lifecycle hooks by subsystem.
// Use RootScope ("subsystems") for hooks that wrap every request.
func WithLifecycles(lifecycles Lifecycles) Option {
	return func(a *App) {
		if a.lifecycles == nil {
			a.lifecycles = make(Lifecycles, len(lifecycles))
		}
		maps.Copy(a.lifecycles, lifecycles)
	}
}

// WithRenderer sets the view renderer used by the render stage.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithDefaults sets app-wide values merged into every request's bag
// before query, path and body values.
func WithDefaults(defaults Bag) Option {
	return func(a *App) {
		if a.defaults == nil {
			a.defaults = make(Bag, len(defaults))
		}
		maps.Copy(a.defaults, defaults)
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Files are served with default cache headers. Directories and missing files
// go through the app's not-found handling like any unmatched path.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	conduit.New(
//	    conduit.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			a.errs = append(a.errs, fmt.Errorf("static files %q: %w", pattern, err))
			return
		}
		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(subFS))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Missing files and directories fall through to the app's not-found handling.
			name := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(r.URL.Path, prefix)), "/")
			if info, err := fs.Stat(subFS, name); err != nil || info.IsDir() || strings.HasSuffix(r.URL.Path, "/") {
				a.unmatchedHandler(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			fileServer.ServeHTTP(w, r)
		})
		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	conduit.WithHealthChecks(
//	    conduit.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics records stage outcomes and request durations with Prometheus
// and serves them at /metrics (see WithMetricsPath).
func WithMetrics(opts ...MetricsOption) Option {
	return func(a *App) {
		a.metrics = newMetrics(opts...)
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	conduit.New(
//	    conduit.WithLogger("movies", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	conduit.New(
//	    conduit.WithCookieOptions(
//	        cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}
