package conduit

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/conduit/internal"
	"github.com/dmitrymomot/conduit/pkg/cookie"
	"github.com/dmitrymomot/conduit/pkg/health"
	"github.com/dmitrymomot/conduit/pkg/logger"
)

// Type aliases - public API
type (
	// App is the dispatch table plus the HTTP server lifecycle.
	App = internal.App

	// Context provides request/response access, the dispatch state of the
	// request, its data Bag and SetView.
	Context = internal.Context

	// Dispatch is the matched route and handler address of a request.
	Dispatch = internal.Dispatch

	// Address is a parsed "subsystem:controller.method" notation.
	Address = internal.Address

	// Bag is the per-request data bag.
	Bag = internal.Bag

	// Mode declares how a hook continues the pipeline.
	Mode = internal.Mode

	// Next continues the pipeline from a ManualAdvance hook.
	Next = internal.Next

	// Hook is a before/after hook or an action.
	Hook = internal.Hook

	// ErrorHook is an error hook.
	ErrorHook = internal.ErrorHook

	// Lifecycle holds the hooks of a subsystem, or the global hooks under RootScope.
	Lifecycle = internal.Lifecycle

	// Controller holds controller hooks and its named actions.
	Controller = internal.Controller

	// Controllers maps subsystem -> controller name -> controller.
	Controllers = internal.Controllers

	// Lifecycles maps subsystem names (or RootScope) to lifecycles.
	Lifecycles = internal.Lifecycles

	// Routes maps "METHOD /path" keys to handler notations.
	Routes = internal.Routes

	// Route is a parsed route key.
	Route = internal.Route

	// Renderer renders a view id with the request's bag.
	Renderer = internal.Renderer

	// RendererFunc adapts a function to Renderer.
	RendererFunc = internal.RendererFunc

	// HandlerFunc is the middleware handler signature.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps every request, routed or not.
	Middleware = internal.Middleware

	// Component is a renderable template (templ.Component satisfies it).
	Component = internal.Component

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// MetricsOption configures the Prometheus endpoint.
	MetricsOption = internal.MetricsOption

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// NotationError reports a malformed handler notation.
	NotationError = internal.NotationError

	// RouteError reports an invalid route declaration.
	RouteError = internal.RouteError

	// PanicError wraps a value recovered from a hook.
	PanicError = internal.PanicError

	// ResponseWriter wraps http.ResponseWriter and tracks the written status.
	ResponseWriter = internal.ResponseWriter

	// Extractor tries several sources for a request value.
	Extractor = internal.Extractor

	// ExtractorSource reads a value from a request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option
)

// Advance modes.
const (
	AutoAdvance   = internal.AutoAdvance
	ManualAdvance = internal.ManualAdvance
)

// RootScope is the Lifecycles key of the global hooks.
const RootScope = internal.RootScope

// Error kinds. Match them with errors.Is.
var (
	ErrMalformedNotation = internal.ErrMalformedNotation
	ErrNotFound          = internal.ErrNotFound
	ErrUnauthorized      = internal.ErrUnauthorized
	ErrAlreadyExists     = internal.ErrAlreadyExists
	ErrInvalidArgument   = internal.ErrInvalidArgument
	ErrIncompleteView    = internal.ErrIncompleteView
	ErrNoRenderer        = internal.ErrNoRenderer
	ErrPanic             = internal.ErrPanic
	ErrInvalidRoute      = internal.ErrInvalidRoute
)

// Constructors

// New builds an application. It fails when a route key or handler
// notation is invalid.
//
// Example:
//
//	app, err := conduit.New(
//	    conduit.WithRoutes(conduit.Routes{
//	        "GET /":      "desktop:main.default",
//	        "GET /login": "desktop:security.login",
//	    }),
//	    conduit.WithControllers(controllers),
//	    conduit.WithLifecycles(lifecycles),
//	    conduit.WithRenderer(renderer),
//	)
//	if err != nil {
//	    return err
//	}
//	return app.Run(":8080", conduit.Logger(log))
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *App {
	return internal.MustNew(opts...)
}

// Hooks

// Auto wraps fn as an AutoAdvance hook.
func Auto(fn func(c Context) error) Hook {
	return internal.Auto(fn)
}

// Manual wraps fn as a ManualAdvance hook.
func Manual(fn func(c Context, next Next) error) Hook {
	return internal.Manual(fn)
}

// AutoError wraps fn as an AutoAdvance error hook. Returning nil resolves the error.
func AutoError(fn func(c Context, err error) error) ErrorHook {
	return internal.AutoError(fn)
}

// ManualError wraps fn as a ManualAdvance error hook.
func ManualError(fn func(c Context, err error, next Next) error) ErrorHook {
	return internal.ManualError(fn)
}

// Notation and routes

// ParseNotation parses "subsystem:controller.method".
func ParseNotation(token string) (Address, error) {
	return internal.ParseNotation(token)
}

// MustParseNotation is like ParseNotation but panics on error.
func MustParseNotation(token string) Address {
	return internal.MustParseNotation(token)
}

// LoadRoutes decodes a YAML mapping of route keys to notations.
func LoadRoutes(r io.Reader) (Routes, error) {
	return internal.LoadRoutes(r)
}

// LoadRoutesFS reads a YAML route file from fsys.
func LoadRoutesFS(fsys fs.FS, name string) (Routes, error) {
	return internal.LoadRoutesFS(fsys, name)
}

// DispatchFromContext returns the dispatch state of a matched request.
func DispatchFromContext(ctx context.Context) (*Dispatch, bool) {
	return internal.DispatchFromContext(ctx)
}

// Options

// WithRoutes adds route declarations.
func WithRoutes(routes Routes) Option {
	return internal.WithRoutes(routes)
}

// WithRoutesFS adds the routes declared in a YAML file.
func WithRoutesFS(fsys fs.FS, name string) Option {
	return internal.WithRoutesFS(fsys, name)
}

// WithControllers registers controllers.
func WithControllers(controllers Controllers) Option {
	return internal.WithControllers(controllers)
}

// WithLifecycles registers subsystem and global lifecycles.
func WithLifecycles(lifecycles Lifecycles) Option {
	return internal.WithLifecycles(lifecycles)
}

// WithRenderer sets the view renderer.
func WithRenderer(r Renderer) Option {
	return internal.WithRenderer(r)
}

// WithDefaults seeds every request bag with defaults.
func WithDefaults(defaults Bag) Option {
	return internal.WithDefaults(defaults)
}

// WithMiddleware adds middleware around every request.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles serves files from fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks mounts liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLivenessPath sets the liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithMetrics exposes Prometheus metrics for requests and pipeline stages.
func WithMetrics(opts ...MetricsOption) Option {
	return internal.WithMetrics(opts...)
}

// WithMetricsPath sets the metrics endpoint path.
func WithMetricsPath(path string) MetricsOption {
	return internal.WithMetricsPath(path)
}

// WithMetricsRegistry registers metrics on reg instead of a private registry.
func WithMetricsRegistry(reg *prometheus.Registry) MetricsOption {
	return internal.WithMetricsRegistry(reg)
}

// WithLogger creates a JSON logger tagged with component.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// DispatchExtractor adds the matched handler address to log records.
func DispatchExtractor() ContextExtractor {
	return internal.DispatchExtractor()
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the server starts listening.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithTitle sets the error title.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithDetail sets the error detail.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithError sets the wrapped error.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// NotFound returns a 404 error of kind ErrNotFound.
func NotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NotFound(message, opts...)
}

// Unauthorized returns a 401 error of kind ErrUnauthorized.
func Unauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.Unauthorized(message, opts...)
}

// AlreadyExists returns a 409 error of kind ErrAlreadyExists.
func AlreadyExists(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.AlreadyExists(message, opts...)
}

// InvalidArgument returns a 400 error of kind ErrInvalidArgument.
func InvalidArgument(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.InvalidArgument(message, opts...)
}

// Internal returns a 500 error.
func Internal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.Internal(message, opts...)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	return internal.StatusCode(err)
}

// Extractors

// NewExtractor tries sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource       { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource        { return internal.FromQuery(name) }
func FromCookie(name string) ExtractorSource       { return internal.FromCookie(name) }
func FromCookieSigned(name string) ExtractorSource { return internal.FromCookieSigned(name) }
func FromParam(name string) ExtractorSource        { return internal.FromParam(name) }
func FromBag(key string) ExtractorSource           { return internal.FromBag(key) }
func FromForm(name string) ExtractorSource         { return internal.FromForm(name) }
func FromBearerToken() ExtractorSource             { return internal.FromBearerToken() }

// Typed accessors

// Scalar is the set of types the typed accessors convert to.
type Scalar = internal.Scalar

// ContextValue returns the request context value for key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a path parameter converted to T.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a query parameter converted to T.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault is like Query with a fallback for missing or invalid values.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// BagValue returns the bag value at key converted to T.
func BagValue[T Scalar](b Bag, key string) T {
	return internal.BagValue[T](b, key)
}

// BagLookup is like BagValue but reports whether the key held a convertible value.
func BagLookup[T Scalar](b Bag, key string) (T, bool) {
	return internal.BagLookup[T](b, key)
}
