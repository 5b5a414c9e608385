package htmx

import (
	"net/http"
	"strings"
)

// Redirect sends the client to url. htmx requests get an HX-Redirect header
// with status 200, since htmx ignores 3xx responses; other requests get a
// regular redirect with code.
func Redirect(w http.ResponseWriter, r *http.Request, url string, code int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, code)
}

// RedirectBack redirects to the "redirect" query parameter when it holds a
// local path, and to fallback otherwise.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	Redirect(w, r, BackURL(r, fallback), http.StatusFound)
}

// BackURL returns the "redirect" query parameter when it is a local path
// ("/..." but not "//..." or "/\..."), and fallback otherwise.
func BackURL(r *http.Request, fallback string) string {
	target := r.URL.Query().Get("redirect")
	if !isLocalPath(target) {
		return fallback
	}
	return target
}

func isLocalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(p, "\r\n")
}
