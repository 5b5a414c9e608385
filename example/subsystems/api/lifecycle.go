// Package api is the JSON subsystem. Every response is an envelope
// {"ok": bool, "data": any}: actions put their result in the bag's "data"
// entry and the after hook writes it.
package api

import (
	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/subsystems"
)

type envelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

// NewLifecycle returns the api subsystem hooks.
func NewLifecycle() *conduit.Lifecycle {
	return &conduit.Lifecycle{
		OnBefore: conduit.Auto(func(c conduit.Context) error {
			if !subsystems.User(c).IsAuthenticated {
				return conduit.Unauthorized("sign in required")
			}
			c.Bag()["data"] = true
			return nil
		}),

		OnAfter: conduit.Auto(func(c conduit.Context) error {
			return c.JSON(c.Status(), envelope{OK: true, Data: c.Bag()["data"]})
		}),

		// Details stay in the log; clients get a generic message.
		OnError: conduit.AutoError(func(c conduit.Context, err error) error {
			code := conduit.StatusCode(err)
			if code >= 500 {
				c.LogError("api request failed", "error", err)
			} else {
				c.LogDebug("api request rejected", "error", err)
			}
			return c.JSON(code, envelope{OK: false, Data: "Something went wrong."})
		}),
	}
}
