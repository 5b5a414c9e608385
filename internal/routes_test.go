package internal_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
)

func TestRoute_Pattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/login", "/login"},
		{"/api/movies/:movieId", "/api/movies/{movieId}"},
		{"/users/:userId/movies/:movieId", "/users/{userId}/movies/{movieId}"},
		{"/static/*", "/static/*"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, internal.Route{Path: tt.path}.Pattern())
		})
	}
}

func TestLoadRoutes(t *testing.T) {
	t.Parallel()

	t.Run("yaml mapping", func(t *testing.T) {
		t.Parallel()

		routes, err := internal.LoadRoutes(strings.NewReader(`
GET /: desktop:main.default
POST /login: desktop:security.processLogin
DELETE /api/movies/:movieId: api:movies.deleteMovie
`))
		require.NoError(t, err)
		require.Equal(t, internal.Routes{
			"GET /":                       "desktop:main.default",
			"POST /login":                 "desktop:security.processLogin",
			"DELETE /api/movies/:movieId": "api:movies.deleteMovie",
		}, routes)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		routes, err := internal.LoadRoutes(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, routes)
	})

	t.Run("not a mapping", func(t *testing.T) {
		t.Parallel()

		_, err := internal.LoadRoutes(strings.NewReader("- GET /"))
		require.Error(t, err)
	})

	t.Run("from fs", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"routes.yaml": {Data: []byte("GET /logout: desktop:security.logout\n")}}
		routes, err := internal.LoadRoutesFS(fsys, "routes.yaml")
		require.NoError(t, err)
		require.Equal(t, "desktop:security.logout", routes["GET /logout"])

		_, err = internal.LoadRoutesFS(fsys, "missing.yaml")
		require.Error(t, err)
	})

	t.Run("WithRoutesFS reports load errors from New", func(t *testing.T) {
		t.Parallel()

		_, err := internal.New(internal.WithRoutesFS(fstest.MapFS{}, "routes.yaml"))
		require.Error(t, err)
	})
}
