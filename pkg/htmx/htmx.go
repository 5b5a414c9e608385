package htmx

import "net/http"

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
// Boosted requests swap the whole body and expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

// IsPartial reports whether the response should be a fragment rather than
// a full page: an htmx request that is neither boosted nor a history restore.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r) && r.Header.Get(HeaderHistoryRestore) != "true"
}
