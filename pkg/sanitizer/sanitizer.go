// Package sanitizer cleans user input with bluemonday policies.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var policies = sync.OnceValues(func() (strict, basic *bluemonday.Policy) {
	strict = bluemonday.StrictPolicy()

	basic = bluemonday.NewPolicy()
	basic.AllowStandardURLs()
	basic.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li", "code", "pre", "blockquote")
	basic.AllowAttrs("href").OnElements("a")
	basic.RequireNoFollowOnLinks(true)
	return strict, basic
})

// Text strips all markup from s, decodes entities and collapses runs of
// whitespace. The result is plain text and must be escaped on output.
func Text(s string) string {
	strict, _ := policies()
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}

// HTML keeps basic formatting (paragraphs, emphasis, lists, code, links)
// and removes everything else, including scripts, event handlers and
// javascript: URLs.
func HTML(s string) string {
	_, basic := policies()
	return basic.Sanitize(s)
}

// WithPolicy sanitizes s with p. A nil policy returns s unchanged.
func WithPolicy(s string, p *bluemonday.Policy) string {
	if p == nil {
		return s
	}
	return p.Sanitize(s)
}
