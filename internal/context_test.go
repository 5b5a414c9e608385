package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
	"github.com/dmitrymomot/conduit/pkg/cookie"
)

// --- context.Context interface tests ---

func TestContextImplementsContextInterface(t *testing.T) {
	t.Parallel()

	t.Run("Deadline delegates to request context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			deadline, ok := c.Deadline()
			require.True(t, ok)
			require.False(t, deadline.IsZero())

			expected, _ := ctx.Deadline()
			require.Equal(t, expected, deadline)
		})
	})

	t.Run("Deadline returns false when no deadline set", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			deadline, ok := c.Deadline()
			require.False(t, ok)
			require.True(t, deadline.IsZero())
		})
	})

	t.Run("Done delegates to request context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			// Done channel should not be closed yet.
			select {
			case <-c.Done():
				t.Fatal("Done channel should not be closed before cancel")
			default:
			}

			cancel()

			// Done channel should be closed after cancel.
			select {
			case <-c.Done():
				// expected
			case <-time.After(time.Second):
				t.Fatal("Done channel should be closed after cancel")
			}
		})
	})

	t.Run("Done returns nil when no cancellation", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			// Just verify it doesn't panic.
			_ = c.Done()
		})
	})

	t.Run("Err returns nil before cancellation", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(t.Context())
		requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.Err())
		})
	})

	t.Run("Err returns Canceled after cancel", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			cancel()
			require.ErrorIs(t, c.Err(), context.Canceled)
		})
	})

	t.Run("Err returns DeadlineExceeded after timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()

		// Wait for the timeout to expire.
		time.Sleep(time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			require.ErrorIs(t, c.Err(), context.DeadlineExceeded)
		})
	})

	t.Run("Value delegates to request context", func(t *testing.T) {
		t.Parallel()

		type testKey struct{}
		ctx := context.WithValue(context.Background(), testKey{}, "hello")

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			val := c.Value(testKey{})
			require.Equal(t, "hello", val)
		})
	})

	t.Run("Value returns nil for missing key", func(t *testing.T) {
		t.Parallel()

		type testKey struct{}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			require.Nil(t, c.Value(testKey{}))
		})
	})

	t.Run("Value reflects Set changes", func(t *testing.T) {
		t.Parallel()

		type testKey struct{}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			c.Set(testKey{}, 42)
			require.Equal(t, 42, c.Value(testKey{}))
		})
	})

	t.Run("context can be passed to functions accepting context.Context", func(t *testing.T) {
		t.Parallel()

		type testKey struct{}
		ctx := context.WithValue(context.Background(), testKey{}, "world")
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) {
			// Wrap in context.WithValue to prove it works as a parent context.
			type childKey struct{}
			derived := context.WithValue(c, childKey{}, "child-val")

			require.Equal(t, "world", derived.Value(testKey{}))
			require.Equal(t, "child-val", derived.Value(childKey{}))
		})
	})
}


// --- Dispatch state tests ---

func TestContextDispatchState(t *testing.T) {
	t.Parallel()

	t.Run("matched request exposes route and address", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			d, ok := c.Dispatch()
			require.True(t, ok)
			require.Equal(t, internal.Route{Path: "/", Notation: "test:probe.run"}, d.Route)
			require.Equal(t, internal.MustParseNotation("test:probe.run"), d.Address)
			require.Equal(t, d.Address, c.View())
		})
	})

	t.Run("SetView resolves against the current view", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			notation string
			want     string
		}{
			{".other", "subsystems/test/views/probe/other"},
			{"other", "subsystems/test/views/probe/other"},
			{"main.default", "subsystems/test/views/main/default"},
			{"common:error.notfound", "subsystems/common/views/error/notfound"},
		}

		for _, tt := range tests {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			requestVia(t, req, nil, func(c internal.Context) {
				require.NoError(t, c.SetView(tt.notation))
				require.Equal(t, tt.want, c.View().ViewPath())
			})
		}
	})

	t.Run("SetView is idempotent", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.SetView("main.default"))
			first := c.View()
			require.NoError(t, c.SetView("main.default"))
			require.Equal(t, first, c.View())
		})
	})

	t.Run("SetView chains relative notations", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.SetView("desktop:security.login"))
			require.NoError(t, c.SetView("main.default"))
			require.NoError(t, c.SetView(".about"))
			require.Equal(t, "desktop:main.about", c.View().String())
		})
	})

	t.Run("SetView rejects malformed notation and keeps the view", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			err := c.SetView("a:b")
			require.ErrorIs(t, err, internal.ErrMalformedNotation)
			require.Equal(t, "test:probe.run", c.View().String())
		})
	})

	t.Run("Bag returns the same map", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			c.Bag()["movies"] = []string{"Alien"}
			require.Equal(t, []string{"Alien"}, c.Bag()["movies"])
		})
	})
}

// --- Response helpers tests ---

func TestContextResponses(t *testing.T) {
	t.Parallel()

	t.Run("SetStatus applies to the next write", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			c.SetStatus(http.StatusCreated)
			require.Equal(t, http.StatusCreated, c.Status())
			require.False(t, c.Written())
			_, _ = c.Response().Write([]byte("created"))
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "created", w.Body.String())
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.JSON(http.StatusOK, map[string]string{"name": "Alien"}))
			require.True(t, c.Written())
		})

		require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		require.JSONEq(t, `{"name":"Alien"}`, w.Body.String())
	})

	t.Run("Redirect", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.Redirect(http.StatusFound, "/login"))
		})

		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Redirect answers htmx with HX-Redirect", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("HX-Request", "true")
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.True(t, c.IsHTMX())
			require.NoError(t, c.Redirect(http.StatusFound, "/login"))
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "/login", w.Header().Get("HX-Redirect"))
		require.Empty(t, w.Header().Get("Location"))
	})

	t.Run("Render writes a component", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.NoError(t, c.Render(http.StatusOK, stringComponent("<h1>Movies</h1>")))
		})

		require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		require.Equal(t, "<h1>Movies</h1>", w.Body.String())
	})

	t.Run("Error builds without writing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			err := c.Error(http.StatusForbidden, "nope", internal.WithTitle("Forbidden"))
			require.Equal(t, http.StatusForbidden, err.Code)
			require.False(t, c.Written())
		})

		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

type stringComponent string

func (s stringComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

// --- Cookie tests ---

func TestContextCookies(t *testing.T) {
	t.Parallel()

	t.Run("signed cookie round trip", func(t *testing.T) {
		t.Parallel()

		opts := []internal.Option{internal.WithCookieOptions(cookie.WithSecret(strings.Repeat("s", 32)))}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, opts, func(c internal.Context) {
			require.NoError(t, c.SetCookieSigned("sessionId", "abc", 3600))
		})

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range w.Result().Cookies() {
			req.AddCookie(ck)
		}
		requestVia(t, req, opts, func(c internal.Context) {
			v, err := c.CookieSigned("sessionId")
			require.NoError(t, err)
			require.Equal(t, "abc", v)
		})
	})

	t.Run("signed cookie without secret", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			err := c.SetCookieSigned("sessionId", "abc", 3600)
			require.True(t, errors.Is(err, cookie.ErrNoSecret))
		})
	})

	t.Run("delete cookie expires it", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) {
			c.DeleteCookie("sessionId")
		})

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "sessionId", cookies[0].Name)
		require.Less(t, cookies[0].MaxAge, 0)
	})
	t.Run("flash is read once", func(t *testing.T) {
		t.Parallel()

		opts := []internal.Option{internal.WithCookieOptions(cookie.WithSecret(strings.Repeat("s", 32)))}

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) {
			require.NoError(t, c.SetFlash("notice", "Welcome"))
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range w.Result().Cookies() {
			req.AddCookie(ck)
		}
		w = requestVia(t, req, opts, func(c internal.Context) {
			var notice string
			require.NoError(t, c.Flash("notice", &notice))
			require.Equal(t, "Welcome", notice)
		})
		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		require.Less(t, cleared[0].MaxAge, 0)
	})
}
