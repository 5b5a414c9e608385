package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// Bag is the per-request data collection. Hooks read request input from it
// and stage output in it; the view renderer receives it as template data.
//
// Values seeded from the request are strings, or []string for repeated
// query and form keys. JSON bodies keep their decoded types.
type Bag map[string]any

// Default body limits.
const (
	defaultMaxBodyBytes      = 10 << 20 // 10MB
	defaultMaxMultipartBytes = 32 << 20 // 32MB
)

// String returns the value at key as a string. Slices yield their first element.
func (b Bag) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case nil:
	default:
		return fmt.Sprint(v)
	}
	return ""
}

// Has reports whether key is set.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// newBag merges, in increasing precedence: app-wide defaults, query
// parameters, path parameters and body fields.
func newBag(r *http.Request, defaults Bag) (Bag, error) {
	bag := make(Bag)
	maps.Copy(bag, defaults)
	mergeValues(bag, r.URL.Query())

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			bag[key] = rctx.URLParams.Values[i]
		}
	}

	body, err := parseBody(r)
	if err != nil {
		return bag, err
	}
	maps.Copy(bag, body)
	return bag, nil
}

// parseBody decodes url-encoded, multipart and JSON object bodies.
// Other content types yield no fields.
func parseBody(r *http.Request) (Bag, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, InvalidArgument("Malformed form body", WithError(fmt.Errorf("%w: %w", ErrInvalidArgument, err)))
		}
		fields := make(Bag, len(r.PostForm))
		mergeValues(fields, r.PostForm)
		return fields, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(defaultMaxMultipartBytes); err != nil {
			return nil, InvalidArgument("Malformed multipart body", WithError(fmt.Errorf("%w: %w", ErrInvalidArgument, err)))
		}
		fields := make(Bag)
		if r.MultipartForm != nil {
			mergeValues(fields, r.MultipartForm.Value)
		}
		return fields, nil

	case "application/json":
		data, err := io.ReadAll(io.LimitReader(r.Body, defaultMaxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		// Leave the body readable for hooks that decode it themselves.
		r.Body = io.NopCloser(bytes.NewReader(data))
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return nil, nil
		}
		// Arrays and scalars have no field names to merge; hooks read them from the body.
		if trimmed[0] != '{' && json.Valid(trimmed) {
			return nil, nil
		}
		var fields Bag
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, InvalidArgument("Malformed JSON body", WithError(fmt.Errorf("%w: %w", ErrInvalidArgument, err)))
		}
		return fields, nil
	}
	return nil, nil
}

func mergeValues(dst Bag, values url.Values) {
	for key, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			dst[key] = vs[0]
		default:
			dst[key] = vs
		}
	}
}
