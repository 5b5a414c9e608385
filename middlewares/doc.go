// Package middlewares provides request middleware for conduit apps.
//
// Middleware wraps every request, before route matching, so it also sees
// unmatched paths, static files and health probes. A recommended stack:
//
//	app, err := conduit.New(
//	    conduit.WithLogger("movies",
//	        middlewares.RequestIDExtractor(),
//	        conduit.DispatchExtractor(),
//	    ),
//	    conduit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logger(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(10*time.Second),
//	        middlewares.CORS(middlewares.WithAllowOrigins("https://*.example.com")),
//	    ),
//	)
//
// # RequestID
//
// Reuses a well-formed X-Request-ID or X-Correlation-ID header or
// generates a ULID, stores it in the request context and echoes it in the
// response. [GetRequestID] reads it back; [RequestIDExtractor] adds it to
// log records.
//
// # Logger
//
// Logs one record per request. Status 5xx logs at error, 4xx at warn.
//
// # Recover
//
// Panics inside lifecycle hooks are handled by the dispatcher, which runs
// the error hooks. Recover covers everything else and returns a
// [PanicError], answered with 500. http.ErrAbortHandler is re-raised.
//
// # Timeout
//
// Attaches a deadline to the request context. Hooks and services stop
// cooperatively through ctx.Done(); a request that ends past the deadline
// without a response is answered 503 via [TimeoutError].
//
// # CORS
//
// Answers preflight requests and sets CORS headers for allowed origins.
// Origins may be exact, "*", or a subdomain wildcard like
// "https://*.example.com".
package middlewares
