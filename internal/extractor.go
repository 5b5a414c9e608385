package internal

import "strings"

// ExtractorSource reads one candidate value from a request.
type ExtractorSource = func(Context) (string, bool)

// Extractor resolves a request value, such as a session ID or an API
// token, from the first source that yields a non-empty string.
//
//	session := conduit.NewExtractor(
//	    conduit.FromCookieSigned("sessionId"),
//	    conduit.FromBearerToken(),
//	)
type Extractor struct {
	sources []ExtractorSource
}

func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func FromHeader(name string) ExtractorSource {
	return present(func(c Context) string { return c.Header(name) })
}

func FromQuery(name string) ExtractorSource {
	return present(func(c Context) string { return c.Query(name) })
}

func FromParam(name string) ExtractorSource {
	return present(func(c Context) string { return c.Param(name) })
}

func FromForm(name string) ExtractorSource {
	return present(func(c Context) string { return c.Form(name) })
}

// FromBag reads key from the data bag, so it sees query, path and body
// fields as well as values staged by earlier hooks.
func FromBag(key string) ExtractorSource {
	return present(func(c Context) string { return c.Bag().String(key) })
}

func FromCookie(name string) ExtractorSource {
	return verified(func(c Context) (string, error) { return c.Cookie(name) })
}

// FromCookieSigned misses on unsigned or tampered cookies.
func FromCookieSigned(name string) ExtractorSource {
	return verified(func(c Context) (string, error) { return c.CookieSigned(name) })
}

// FromBearerToken reads "Authorization: Bearer <token>". The scheme is
// matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return present(func(c Context) string {
		scheme, token, ok := strings.Cut(c.Header("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	})
}

func present(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}

func verified(get func(Context) (string, error)) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := get(c)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}
