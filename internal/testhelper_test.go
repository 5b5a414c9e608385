package internal_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
)

// requestVia builds an App with a single any-method route at "/" whose action
// runs fn, and sends req through it. The action answers 204 unless fn wrote.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()
	return serveProbe(t, "/", req, opts, fn)
}

// requestViaParam is requestVia with the route "/:id".
func requestViaParam(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()
	return serveProbe(t, "/:id", req, opts, fn)
}

func serveProbe(t *testing.T, path string, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()

	probe := &internal.Controller{
		Actions: map[string]internal.Hook{
			"run": internal.Manual(func(c internal.Context, _ internal.Next) error {
				fn(c)
				if !c.Written() {
					return c.NoContent(http.StatusNoContent)
				}
				return nil
			}),
		},
	}
	opts = append(slices.Clone(opts),
		internal.WithRoutes(internal.Routes{path: "test:probe.run"}),
		internal.WithControllers(internal.Controllers{"test": {"probe": probe}}),
	)

	app, err := internal.New(opts...)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// newApp builds an App and fails the test on error.
func newApp(t *testing.T, opts ...internal.Option) *internal.App {
	t.Helper()
	app, err := internal.New(opts...)
	require.NoError(t, err)
	return app
}

func serve(app http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

// viewNameRenderer writes the view identifier it was asked to render.
var viewNameRenderer = internal.RendererFunc(func(_ context.Context, w io.Writer, view string, _ map[string]any) error {
	_, err := io.WriteString(w, view)
	return err
})

// trace records hook invocations in order.
type trace struct {
	steps []string
	mu    sync.Mutex
}

func (tr *trace) add(step string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.steps = append(tr.steps, step)
}

func (tr *trace) all() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return slices.Clone(tr.steps)
}

// auto returns an AutoAdvance hook that only records name.
func (tr *trace) auto(name string) internal.Hook {
	return internal.Auto(func(internal.Context) error {
		tr.add(name)
		return nil
	})
}

// rethrow returns an AutoAdvance error hook that records name and passes the error on.
func (tr *trace) rethrow(name string) internal.ErrorHook {
	return internal.AutoError(func(_ internal.Context, err error) error {
		tr.add(name)
		return err
	})
}
