// Package common renders the error pages shared by every subsystem.
package common

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/conduit/pkg/view"
)

// Views returns the "common" subsystem's views.
func Views() view.Components {
	return view.Components{
		"subsystems/common/views/error/notfound": func(map[string]any) templ.Component {
			return errorPage("Page Not Found", "The page you requested does not exist.")
		},
		"subsystems/common/views/error/fatal": func(data map[string]any) templ.Component {
			return errorPage(text(data, "title", "Server Error"), text(data, "description", ""))
		},
	}
}

// errorPage is written against templ.Component directly, so the example
// builds without running templ generate. A .templ file rendering the same
// markup can replace it behind the same view ids.
func errorPage(title, description string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%[1]s</title><link rel="stylesheet" href="/static/app.css"></head>
<body class="error">
<h1>%[1]s</h1>
<p>%[2]s</p>
<p><a href="/">Back to your movies</a></p>
</body>
</html>
`, templ.EscapeString(title), templ.EscapeString(description))
		return err
	})
}

func text(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
