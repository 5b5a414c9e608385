package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/conduit/internal"
)

// Logger logs one record per request with method, path, status, size and
// duration, plus the matched route. 5xx responses log at error level and 4xx
// at warn. Place it after RequestID so records carry the request ID; a logger
// built with DispatchExtractor also adds the handler address.
func Logger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Status()
			if err != nil && !c.Written() {
				status = internal.StatusCode(err)
			}
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if d, ok := internal.DispatchFromContext(c.Request().Context()); ok {
				attrs = append(attrs, slog.String("route", d.Route.String()))
			}
			if sized, ok := c.Response().(interface{ Size() int64 }); ok {
				attrs = append(attrs, slog.Int64("size", sized.Size()))
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
