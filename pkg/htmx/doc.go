// Package htmx detects htmx requests and answers them the way htmx expects.
//
// The conduit Context uses it for Redirect, so hooks redirect the same way
// for htmx and plain requests:
//
//	return c.Redirect(http.StatusFound, "/")
//
// Renderers can use IsPartial to skip the page layout for fragment requests:
//
//	c.Bag()["partial"] = htmx.IsPartial(c.Request())
//
// RedirectBack and BackURL follow a "redirect" query parameter, accepting
// only local paths.
package htmx
