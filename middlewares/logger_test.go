package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
	"github.com/dmitrymomot/conduit/middlewares"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		action func(c internal.Context) error
		want   []string
	}{
		{
			name:   "success at info",
			action: func(c internal.Context) error { return c.String(http.StatusOK, "hello") },
			want: []string{
				"level=INFO msg=request", "method=GET", "path=/", "status=200", "size=5",
				"route=/", "request_id=req-1", "handler=test:probe.run",
			},
		},
		{
			name:   "client error at warn",
			action: func(c internal.Context) error { return c.String(http.StatusNotFound, "nope") },
			want:   []string{"level=WARN msg=request", "status=404"},
		},
		{
			name:   "fatal at error",
			action: func(internal.Context) error { return internal.InvalidArgument("bad") },
			want:   []string{"level=ERROR msg=request", "status=500", "handler=test:probe.run"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, buf := bufferLogger()
			app := testApp(t, []internal.Middleware{middlewares.RequestID(), middlewares.Logger()}, tt.action,
				internal.WithCustomLogger(log))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", "req-1")
			do(app, req)

			for _, s := range tt.want {
				require.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestLogger_MiddlewareError(t *testing.T) {
	t.Parallel()

	log, buf := bufferLogger()
	deny := func(internal.HandlerFunc) internal.HandlerFunc {
		return func(internal.Context) error { return internal.Unauthorized("no") }
	}
	app := testApp(t, []internal.Middleware{middlewares.Logger(), deny}, func(internal.Context) error { return nil },
		internal.WithCustomLogger(log))

	w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, buf.String(), "level=WARN msg=request")
	require.Contains(t, buf.String(), "status=401")
}

func TestLogger_Unmatched(t *testing.T) {
	t.Parallel()

	log, buf := bufferLogger()
	app := testApp(t, []internal.Middleware{middlewares.Logger()}, func(internal.Context) error { return nil },
		internal.WithCustomLogger(log))

	do(app, httptest.NewRequest(http.MethodGet, "/missing/page", nil))
	require.Contains(t, buf.String(), "path=/missing/page")
	require.NotContains(t, buf.String(), "handler=")
	require.NotContains(t, buf.String(), "route=")
}
