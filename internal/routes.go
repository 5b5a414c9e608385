package internal

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Routes maps route keys ("METHOD /path/:param", or just "/path" for any
// method) to handler notation ("subsystem:controller.method").
type Routes map[string]string

// Route is a parsed route declaration.
type Route struct {
	// Method is the upper-cased HTTP method, or empty for any method.
	Method string
	// Path is the declared path pattern, e.g. "/api/movies/:movieId".
	Path string
	// Notation is the raw handler notation.
	Notation string
}

// anyMethod tokens accepted in route keys besides omitting the method.
var anyMethod = []string{"ALL", "*"}

var supportedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// parseRoute splits a route key into method and path.
func parseRoute(key, notation string) (Route, error) {
	fields := strings.Fields(key)
	r := Route{Notation: notation}
	switch len(fields) {
	case 1:
		r.Path = fields[0]
	case 2:
		r.Method = strings.ToUpper(fields[0])
		r.Path = fields[1]
	default:
		return Route{}, &RouteError{Key: key, Notation: notation, Err: ErrInvalidRoute}
	}

	if slices.Contains(anyMethod, r.Method) {
		r.Method = ""
	}
	if r.Method != "" && !slices.Contains(supportedMethods, r.Method) {
		return Route{}, &RouteError{Key: key, Notation: notation, Err: fmt.Errorf("%w: unsupported method %q", ErrInvalidRoute, r.Method)}
	}
	if !strings.HasPrefix(r.Path, "/") {
		return Route{}, &RouteError{Key: key, Notation: notation, Err: fmt.Errorf("%w: path must start with /", ErrInvalidRoute)}
	}
	return r, nil
}

// Pattern returns the path in chi syntax: ":name" segments become "{name}".
func (r Route) Pattern() string {
	segments := strings.Split(r.Path, "/")
	for i, seg := range segments {
		if len(seg) > 1 && seg[0] == ':' {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// String returns the route in key form.
func (r Route) String() string {
	if r.Method == "" {
		return r.Path
	}
	return r.Method + " " + r.Path
}

// LoadRoutes decodes a YAML mapping of route keys to notation.
//
// Example file:
//
//	"GET /": "desktop:main.default"
//	"GET /login": "desktop:security.login"
//	"DELETE /api/movies/:movieId": "api:movies.deleteMovie"
func LoadRoutes(r io.Reader) (Routes, error) {
	routes := make(Routes)
	if err := yaml.NewDecoder(r).Decode(&routes); err != nil {
		if err == io.EOF {
			return routes, nil
		}
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}

// LoadRoutesFS reads and decodes a YAML routes file from fsys.
func LoadRoutesFS(fsys fs.FS, name string) (Routes, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open routes: %w", err)
	}
	defer f.Close()
	return LoadRoutes(f)
}
