package internal_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
)

func TestBag_Precedence(t *testing.T) {
	t.Parallel()

	opts := []internal.Option{internal.WithDefaults(internal.Bag{"name": "default", "title": "Movies"})}

	req := httptest.NewRequest(http.MethodPost, "/42?name=query&id=query&page=2", strings.NewReader("name=body"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestViaParam(t, req, opts, func(c internal.Context) {
		bag := c.Bag()
		require.Equal(t, "body", bag.String("name"))
		require.Equal(t, "42", bag.String("id"))
		require.Equal(t, "2", bag.String("page"))
		require.Equal(t, "Movies", bag.String("title"))
	})
}

func TestBag_BodyWinsOverPathParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"form body", "application/x-www-form-urlencoded", "id=9"},
		{"JSON body", "application/json", `{"id":"9"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/7?id=3", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			requestViaParam(t, req, nil, func(c internal.Context) {
				require.Equal(t, "9", c.Bag().String("id"))
				require.Equal(t, "7", c.Param("id"))
			})
		})
	}
}

func TestBag_DefaultsAreNotShared(t *testing.T) {
	t.Parallel()

	defaults := internal.Bag{"title": "Movies"}
	app := newApp(t,
		internal.WithDefaults(defaults),
		internal.WithRoutes(internal.Routes{"/": "test:probe.run"}),
		internal.WithControllers(internal.Controllers{"test": {"probe": {Actions: map[string]internal.Hook{
			"run": internal.Auto(func(c internal.Context) error {
				c.Bag()["title"] = "changed"
				return c.NoContent(http.StatusNoContent)
			}),
		}}}}),
	)

	serve(app, http.MethodGet, "/")
	require.Equal(t, "Movies", defaults["title"])
}

func TestBag_Sources(t *testing.T) {
	t.Parallel()

	t.Run("repeated query keys keep every value", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?tag=a&tag=b", nil)
		requestVia(t, req, nil, func(c internal.Context) {
			require.Equal(t, []string{"a", "b"}, c.Bag()["tag"])
			require.Equal(t, "a", c.Bag().String("tag"))
		})
	})

	t.Run("JSON array body is left to the hooks", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/?page=2", strings.NewReader(` [1, 2]`))
		req.Header.Set("Content-Type", "application/json")
		w := requestVia(t, req, nil, func(c internal.Context) {
			require.Equal(t, internal.Bag{"page": "2"}, c.Bag())

			var ids []int
			require.NoError(t, json.NewDecoder(c.Request().Body).Decode(&ids))
			require.Equal(t, []int{1, 2}, ids)
		})
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("JSON object body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alien","year":1979,"seen":true}`))
		req.Header.Set("Content-Type", "application/json")
		requestVia(t, req, nil, func(c internal.Context) {
			bag := c.Bag()
			require.Equal(t, "Alien", bag.String("name"))
			require.Equal(t, float64(1979), bag["year"])
			require.Equal(t, 1979, internal.BagValue[int](bag, "year"))
			require.Equal(t, true, bag["seen"])

			// The body stays readable.
			data, err := io.ReadAll(c.Request().Body)
			require.NoError(t, err)
			require.Contains(t, string(data), "Alien")
		})
	})

	t.Run("empty JSON body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  "))
		req.Header.Set("Content-Type", "application/json")
		requestVia(t, req, nil, func(c internal.Context) {
			require.Empty(t, c.Bag())
		})
	})

	t.Run("multipart body", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("username", "neo"))
		require.NoError(t, mw.WriteField("password", "trinity"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		requestVia(t, req, nil, func(c internal.Context) {
			require.Equal(t, "neo", c.Bag().String("username"))
			require.Equal(t, "trinity", c.Bag().String("password"))
		})
	})

	t.Run("unknown content type is ignored", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/?q=1", strings.NewReader("raw bytes"))
		req.Header.Set("Content-Type", "application/octet-stream")
		requestVia(t, req, nil, func(c internal.Context) {
			require.Equal(t, internal.Bag{"q": "1"}, c.Bag())
		})
	})
}

func TestBag_Accessors(t *testing.T) {
	t.Parallel()

	bag := internal.Bag{"name": "Alien", "ids": []string{"1", "2"}, "year": 1979, "none": nil}

	require.Equal(t, "Alien", bag.String("name"))
	require.Equal(t, "1", bag.String("ids"))
	require.Equal(t, "1979", bag.String("year"))
	require.Empty(t, bag.String("none"))
	require.Empty(t, bag.String("missing"))
	require.True(t, bag.Has("none"))
	require.False(t, bag.Has("missing"))
}
