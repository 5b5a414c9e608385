package main

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/example/subsystems"
	"github.com/dmitrymomot/conduit/example/subsystems/api"
	"github.com/dmitrymomot/conduit/example/subsystems/common"
	"github.com/dmitrymomot/conduit/example/subsystems/desktop"
	"github.com/dmitrymomot/conduit/middlewares"
	"github.com/dmitrymomot/conduit/pkg/cookie"
	"github.com/dmitrymomot/conduit/pkg/view"
)

//go:embed routes.yaml subsystems/layout.html subsystems/desktop/views public
var assets embed.FS

// services are the dependencies the controllers need.
type services struct {
	users  *service.Users
	movies *service.Movies
}

// newApp wires the subsystems, views and middleware into an application.
// extra options are applied last.
func newApp(cfg Config, log *slog.Logger, svc services, extra ...conduit.Option) (*conduit.App, error) {
	renderer := view.Chain{
		view.NewTemplates(assets, view.WithLayout("subsystems/layout.html")),
		common.Views(),
	}

	opts := []conduit.Option{
		conduit.WithCustomLogger(log),
		conduit.WithRoutesFS(assets, "routes.yaml"),
		conduit.WithControllers(conduit.Controllers{
			"desktop": {
				"main":     desktop.NewMain(svc.movies),
				"security": desktop.NewSecurity(svc.users),
			},
			"api": {
				"movies": api.NewMovies(svc.movies),
			},
		}),
		conduit.WithLifecycles(conduit.Lifecycles{
			conduit.RootScope: subsystems.NewLifecycle(svc.users),
			"desktop":         desktop.NewLifecycle(),
			"api":             api.NewLifecycle(),
		}),
		conduit.WithRenderer(renderer),
		conduit.WithDefaults(conduit.Bag{"appName": "Movies"}),
		conduit.WithCookieOptions(
			cookie.WithSecret(cfg.CookieSecret),
			cookie.WithSecure(cfg.SecureCookies),
			cookie.WithSameSite(http.SameSiteLaxMode),
		),
		conduit.WithStaticFiles("/static/", assets, "public"),
		conduit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logger(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		conduit.WithMetrics(),
	}
	if len(cfg.AllowedOrigins) > 0 {
		// The API authenticates by the session cookie, so cross-origin
		// callers must send credentials.
		opts = append(opts, conduit.WithMiddleware(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.AllowedOrigins...),
			middlewares.WithAllowCredentials(),
		)))
	}
	return conduit.New(append(opts, extra...)...)
}
