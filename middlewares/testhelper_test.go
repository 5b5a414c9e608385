package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
	"github.com/dmitrymomot/conduit/middlewares"
	"github.com/dmitrymomot/conduit/pkg/logger"
)

// testApp routes "/" to an Auto action running fn. The action answers 204
// unless fn wrote or failed.
func testApp(t *testing.T, mws []internal.Middleware, fn func(c internal.Context) error, opts ...internal.Option) *internal.App {
	t.Helper()

	probe := &internal.Controller{
		Actions: map[string]internal.Hook{
			"run": internal.Auto(func(c internal.Context) error {
				if err := fn(c); err != nil {
					return err
				}
				if !c.Written() {
					return c.NoContent(http.StatusNoContent)
				}
				return nil
			}),
		},
	}
	opts = append(opts,
		internal.WithMiddleware(mws...),
		internal.WithRoutes(internal.Routes{"/": "test:probe.run"}),
		internal.WithControllers(internal.Controllers{"test": {"probe": probe}}),
	)
	app, err := internal.New(opts...)
	require.NoError(t, err)
	return app
}

func do(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// bufferLogger returns a text logger carrying the request ID and dispatch extractors.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := logger.Decorate(slog.NewTextHandler(&buf, nil), middlewares.RequestIDExtractor(), internal.DispatchExtractor())
	return slog.New(h), &buf
}
