// Package conduit is a convention-based request dispatcher.
//
// Routes map HTTP method and path to a handler address written as
// "subsystem:controller.method". Every request then runs through a fixed
// pipeline of lifecycle hooks, an action and a view renderer, with the
// view chosen by convention.
//
// # Quick Start
//
//	app, err := conduit.New(
//	    conduit.WithRoutes(conduit.Routes{
//	        "GET /":               "desktop:main.default",
//	        "GET /login":          "desktop:security.login",
//	        "POST /login":         "desktop:security.processLogin",
//	        "DELETE /api/movies/:movieId": "api:movies.deleteMovie",
//	    }),
//	    conduit.WithLifecycles(conduit.Lifecycles{
//	        conduit.RootScope: {OnBefore: loadUser, OnError: errorPages},
//	        "api":             {OnAfter: writeEnvelope},
//	    }),
//	    conduit.WithControllers(conduit.Controllers{
//	        "desktop": {"main": mainController, "security": securityController},
//	        "api":     {"movies": moviesController},
//	    }),
//	    conduit.WithRenderer(renderer),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.Run(":8080")
//
// Routes can also live in YAML and be loaded with [WithRoutesFS].
//
// # Pipeline
//
// A matched request runs global, subsystem and controller before hooks,
// the action, then the after hooks in reverse order. Any error jumps to
// the error hooks (controller, subsystem, global). Without a pending
// error the renderer draws
//
//	subsystems/{subsystem}/views/{controller}/{method}
//
// with the request [Bag] as data. Hooks change the view with
// Context.SetView. Unmatched paths produce [ErrNotFound] and reach the
// global error hook with an empty view address.
//
// # Hooks
//
// [Auto] hooks continue by returning nil and fail by returning an error;
// writing the response stops the pipeline. [Manual] hooks receive next and
// stop the pipeline by returning without calling it:
//
//	mainController := &conduit.Controller{
//	    OnBefore: conduit.Manual(func(c conduit.Context, next conduit.Next) error {
//	        if !signedIn(c) {
//	            return c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request().URL.String()))
//	        }
//	        next(nil)
//	        return nil
//	    }),
//	    Actions: map[string]conduit.Hook{
//	        "default": conduit.Auto(func(c conduit.Context) error {
//	            c.Bag()["title"] = "Movies"
//	            return nil
//	        }),
//	    },
//	}
//
// # Data Bag
//
// Each request gets a Bag merged from, in increasing precedence, defaults
// set with [WithDefaults], query parameters, path parameters and the form
// or JSON body. Use [BagValue] for typed reads.
//
// # Errors
//
// [NotFound], [Unauthorized], [AlreadyExists] and [InvalidArgument] build
// [HTTPError] values of the matching kind; error hooks branch with
// errors.Is on [ErrNotFound] and friends and use [StatusCode] to pick a
// status.
//
// # Operations
//
// [WithHealthChecks] mounts liveness and readiness probes, [WithMetrics]
// exposes Prometheus counters per stage outcome and route, and
// [WithStaticFiles] serves assets ahead of dispatch. Run blocks until
// SIGINT/SIGTERM and shuts down gracefully, running [ShutdownHook]s.
package conduit
