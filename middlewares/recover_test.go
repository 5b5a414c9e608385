package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
	"github.com/dmitrymomot/conduit/middlewares"
)

func panicking(v any) internal.Middleware {
	return func(internal.HandlerFunc) internal.HandlerFunc {
		return func(internal.Context) error { panic(v) }
	}
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("middleware panic becomes 500", func(t *testing.T) {
		t.Parallel()

		log, buf := bufferLogger()
		app := testApp(t, []internal.Middleware{middlewares.Recover(), panicking("boom")},
			func(internal.Context) error { return nil },
			internal.WithCustomLogger(log),
		)

		w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), "stack=")
	})

	t.Run("stack capture disabled", func(t *testing.T) {
		t.Parallel()

		var got error
		app := testApp(t, nil, func(c internal.Context) error {
			got = middlewares.Recover(middlewares.WithRecoverStackSize(0))(func(internal.Context) error {
				panic("boom")
			})(c)
			return nil
		})
		do(app, httptest.NewRequest(http.MethodGet, "/", nil))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.Nil(t, pe.Stack)
		require.True(t, errors.Is(got, internal.ErrPanic))
		require.Equal(t, http.StatusInternalServerError, internal.StatusCode(got))
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		t.Parallel()

		app := testApp(t, []internal.Middleware{middlewares.Recover(), panicking(http.ErrAbortHandler)},
			func(internal.Context) error { return nil })
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			do(app, httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})

	t.Run("hook panics are left to the dispatcher", func(t *testing.T) {
		t.Parallel()

		log, buf := bufferLogger()
		app := testApp(t, []internal.Middleware{middlewares.Recover()},
			func(internal.Context) error { panic("in action") },
			internal.WithCustomLogger(log),
		)

		w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), "fatal error")
	})
}
