// Package desktop is the HTML subsystem: the movie list page and the
// login, sign-up and logout flows.
package desktop

import (
	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/subsystems"
	"github.com/dmitrymomot/conduit/pkg/htmx"
)

// NewLifecycle returns the desktop subsystem hooks.
func NewLifecycle() *conduit.Lifecycle {
	return &conduit.Lifecycle{
		OnBefore: conduit.Auto(func(c conduit.Context) error {
			c.Bag()["partial"] = htmx.IsPartial(c.Request())
			return nil
		}),
		OnError: conduit.AutoError(func(c conduit.Context, err error) error {
			c.LogError("desktop request failed", "error", err)
			return subsystems.Fatal(c)
		}),
	}
}
