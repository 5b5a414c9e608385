package view_test

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/pkg/view"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

var files = fstest.MapFS{
	"layout.html": {Data: []byte(`{{define "layout"}}<title>{{.title}}</title>{{block "content" .}}{{end}}{{end}}`)},
	"subsystems/desktop/views/security/login.html": {Data: []byte(`{{define "content"}}<p>{{upper .errorMessage}}</p>{{end}}`)},
	"subsystems/desktop/views/main/default.html":    {Data: []byte(`{{define "content"}}{{.missing.field}}{{end}}`)},
	"plain/hello.html":                              {Data: []byte(`Hello {{.name}}`)},
	"broken/page.html":                              {Data: []byte(`{{if}}`)},
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	withLayout := view.NewTemplates(files,
		view.WithLayout("layout.html"),
		view.WithFuncs(template.FuncMap{"upper": strings.ToUpper}),
	)

	t.Run("layout and escaping", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := withLayout.Render(context.Background(), &buf, "subsystems/desktop/views/security/login",
			map[string]any{"title": "Login", "errorMessage": "<bad>"})
		require.NoError(t, err)
		require.Equal(t, "<title>Login</title><p>&lt;BAD&gt;</p>", buf.String())
	})

	t.Run("without layout", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := view.NewTemplates(files).Render(context.Background(), &buf, "plain/hello", map[string]any{"name": "Ann"})
		require.NoError(t, err)
		require.Equal(t, "Hello Ann", buf.String())
	})

	t.Run("cached and reloaded render the same", func(t *testing.T) {
		t.Parallel()
		for _, r := range []*view.Templates{view.NewTemplates(files), view.NewTemplates(files, view.WithReload(true))} {
			for range 2 {
				var buf bytes.Buffer
				require.NoError(t, r.Render(context.Background(), &buf, "plain/hello", map[string]any{"name": "Bo"}))
				require.Equal(t, "Hello Bo", buf.String())
			}
		}
	})

	t.Run("missing view", func(t *testing.T) {
		t.Parallel()
		err := withLayout.Render(context.Background(), io.Discard, "subsystems/desktop/views/main/nope", nil)
		require.ErrorIs(t, err, view.ErrNotFound)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		err := view.NewTemplates(files).Render(context.Background(), io.Discard, "broken/page", nil)
		require.Error(t, err)
		require.NotErrorIs(t, err, view.ErrNotFound)
	})

	t.Run("execute error", func(t *testing.T) {
		t.Parallel()
		err := withLayout.Render(context.Background(), io.Discard, "subsystems/desktop/views/main/default",
			map[string]any{"missing": 1})
		require.ErrorContains(t, err, `view "subsystems/desktop/views/main/default"`)
	})
}

func TestComponents(t *testing.T) {
	t.Parallel()

	c := view.Components{
		"subsystems/common/views/error/notfound": func(data map[string]any) templ.Component {
			return text("Not Found: " + data["title"].(string))
		},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf, "subsystems/common/views/error/notfound", map[string]any{"title": "<x>"}))
	require.Equal(t, "Not Found: &lt;x&gt;", buf.String())

	require.ErrorIs(t, c.Render(context.Background(), io.Discard, "other", nil), view.ErrNotFound)
}

func TestChain(t *testing.T) {
	t.Parallel()

	chain := view.Chain{
		view.Components{"plain/hello": func(map[string]any) templ.Component { return text("from templ") }},
		view.NewTemplates(files),
	}

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, chain.Render(context.Background(), &buf, "plain/hello", nil))
		require.Equal(t, "from templ", buf.String())
	})

	t.Run("falls through", func(t *testing.T) {
		t.Parallel()
		err := chain.Render(context.Background(), io.Discard, "broken/page", nil)
		require.Error(t, err)
		require.NotErrorIs(t, err, view.ErrNotFound)
	})

	t.Run("nobody knows it", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, chain.Render(context.Background(), io.Discard, "x/y", nil), view.ErrNotFound)
	})

	t.Run("other errors stop the chain", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := view.Components{"x/y": func(map[string]any) templ.Component {
			return templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
		}}
		err := view.Chain{failing, view.NewTemplates(files)}.Render(context.Background(), io.Discard, "x/y", nil)
		require.ErrorIs(t, err, boom)
	})
}
