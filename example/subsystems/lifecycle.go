// Package subsystems holds the application-wide lifecycle and the session
// helpers the desktop and api subsystems share.
package subsystems

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
)

// SessionCookie is the signed cookie holding the signed-in user's ID.
const SessionCookie = "sessionId"

// SessionMaxAge is the session cookie lifetime in seconds.
const SessionMaxAge = 30 * 24 * 60 * 60

// CurrentUser is the bag's "user" entry.
type CurrentUser struct {
	ID              string
	Username        string
	IsAuthenticated bool
}

var session = conduit.NewExtractor(conduit.FromCookieSigned(SessionCookie))

// User returns the user the global before hook resolved.
func User(c conduit.Context) CurrentUser {
	u, _ := c.Bag()["user"].(CurrentUser)
	return u
}

// Fatal stages the generic error page.
func Fatal(c conduit.Context) error {
	c.Bag()["title"] = "Server Error"
	c.Bag()["description"] = "An unexpected error occurred. Our team is looking into it."
	c.SetStatus(http.StatusInternalServerError)
	return c.SetView("common:error.fatal")
}

// NewLifecycle returns the global hooks: session resolution before every
// request and the last error handler.
func NewLifecycle(users *service.Users) *conduit.Lifecycle {
	return &conduit.Lifecycle{
		OnBefore: conduit.Auto(func(c conduit.Context) error {
			c.Bag()["user"] = CurrentUser{}

			id, ok := session.Extract(c)
			if !ok {
				// Drop cookies that fail verification.
				if _, err := c.Cookie(SessionCookie); err == nil {
					c.DeleteCookie(SessionCookie)
				}
				return nil
			}

			u, err := users.Get(c, id)
			if errors.Is(err, conduit.ErrNotFound) {
				c.DeleteCookie(SessionCookie)
				return nil
			}
			if err != nil {
				return err
			}

			c.Bag()["user"] = CurrentUser{ID: u.ID, Username: u.Username, IsAuthenticated: true}
			return nil
		}),

		OnError: conduit.AutoError(func(c conduit.Context, err error) error {
			if errors.Is(err, conduit.ErrNotFound) {
				c.SetStatus(http.StatusNotFound)
				return c.SetView("common:error.notfound")
			}
			c.LogError("request failed", "error", err)
			return Fatal(c)
		}),
	}
}
