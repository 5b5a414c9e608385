package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/conduit/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

type corsConfig struct {
	origins       []string
	originFunc    func(origin string) bool
	methods       []string
	headers       []string
	exposeHeaders []string
	credentials   bool
	maxAge        time.Duration
}

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

// WithAllowOrigins sets the allowed origins. "*" allows any origin and
// "https://*.example.com" allows any subdomain. Default: "*".
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.origins = origins }
}

// WithAllowOriginFunc decides origins dynamically, overriding WithAllowOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *corsConfig) { cfg.originFunc = fn }
}

func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.methods = methods }
}

func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.headers = headers }
}

func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) { cfg.exposeHeaders = headers }
}

// WithAllowCredentials allows cookies and auth headers. The request origin
// is echoed instead of "*".
func WithAllowCredentials() CORSOption {
	return func(cfg *corsConfig) { cfg.credentials = true }
}

// WithMaxAge sets the preflight cache duration. Zero omits the header.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) { cfg.maxAge = d }
}

// corsPolicy is a corsConfig with its header values precomputed.
type corsPolicy struct {
	exact       []string
	suffixes    [][2]string // scheme+"://" and "."+domain of "scheme://*.domain"
	any         bool
	originFunc  func(string) bool
	credentials bool
	methods     string
	headers     string
	expose      string
	maxAge      string
}

func newCORSPolicy(cfg *corsConfig) *corsPolicy {
	p := &corsPolicy{
		originFunc:  cfg.originFunc,
		credentials: cfg.credentials,
		methods:     strings.Join(cfg.methods, ", "),
		headers:     strings.Join(cfg.headers, ", "),
		expose:      strings.Join(cfg.exposeHeaders, ", "),
	}
	if cfg.maxAge > 0 {
		p.maxAge = strconv.Itoa(int(cfg.maxAge.Seconds()))
	}
	for _, o := range cfg.origins {
		switch {
		case o == "*":
			p.any = true
		case strings.Contains(o, "://*."):
			scheme, domain, _ := strings.Cut(o, "://*")
			p.suffixes = append(p.suffixes, [2]string{scheme + "://", domain})
		default:
			p.exact = append(p.exact, o)
		}
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	if p.originFunc != nil {
		return p.originFunc(origin)
	}
	if p.any || slices.Contains(p.exact, origin) {
		return true
	}
	for _, s := range p.suffixes {
		if strings.HasPrefix(origin, s[0]) && strings.HasSuffix(origin, s[1]) && len(origin) > len(s[0])+len(s[1]) {
			return true
		}
	}
	return false
}

// CORS answers preflight requests and adds CORS headers to responses for
// allowed origins. Requests without an Origin, or from a disallowed one,
// pass through untouched.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &corsConfig{
		origins: []string{"*"},
		methods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		headers: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		maxAge:  DefaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	p := newCORSPolicy(cfg)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !p.allows(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if p.any && !p.credentials && p.originFunc == nil {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if p.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if p.expose != "" {
				h.Set("Access-Control-Expose-Headers", p.expose)
			}

			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", p.methods)
			h.Set("Access-Control-Allow-Headers", p.headers)
			if p.maxAge != "" {
				h.Set("Access-Control-Max-Age", p.maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
