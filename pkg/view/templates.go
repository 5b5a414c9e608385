package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"
)

// Templates renders html/template files named "<id>.html" from a file system.
// Parsed templates are cached per view id unless reload is enabled.
type Templates struct {
	fsys   fs.FS
	layout string
	funcs  template.FuncMap
	reload bool
	cache  sync.Map // id -> *template.Template
}

// TemplatesOption configures Templates.
type TemplatesOption func(*Templates)

// WithLayout parses the named file before every view and executes the
// template it defines as "layout". Views then define "content" (and any
// other blocks the layout declares).
func WithLayout(name string) TemplatesOption {
	return func(t *Templates) { t.layout = name }
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) TemplatesOption {
	return func(t *Templates) {
		if t.funcs == nil {
			t.funcs = template.FuncMap{}
		}
		for k, v := range funcs {
			t.funcs[k] = v
		}
	}
}

// WithReload re-parses templates on every render. Use during development.
func WithReload(reload bool) TemplatesOption {
	return func(t *Templates) { t.reload = reload }
}

// NewTemplates returns a renderer over fsys.
func NewTemplates(fsys fs.FS, opts ...TemplatesOption) *Templates {
	t := &Templates{fsys: fsys}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Templates) Render(_ context.Context, w io.Writer, id string, data map[string]any) error {
	tmpl, err := t.lookup(id)
	if err != nil {
		return err
	}
	name := path.Base(id) + ".html"
	if t.layout != "" {
		name = "layout"
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("view %q: %w", id, err)
	}
	return nil
}

func (t *Templates) lookup(id string) (*template.Template, error) {
	if !t.reload {
		if cached, ok := t.cache.Load(id); ok {
			return cached.(*template.Template), nil
		}
	}

	file := id + ".html"
	if _, err := fs.Stat(t.fsys, file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(id)
		}
		return nil, err
	}

	files := []string{file}
	if t.layout != "" {
		files = []string{t.layout, file}
	}
	tmpl, err := template.New(path.Base(files[0])).Funcs(t.funcs).ParseFS(t.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", id, err)
	}

	if !t.reload {
		t.cache.Store(id, tmpl)
	}
	return tmpl, nil
}
