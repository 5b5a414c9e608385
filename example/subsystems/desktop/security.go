package desktop

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/example/subsystems"
	"github.com/dmitrymomot/conduit/pkg/htmx"
	"github.com/dmitrymomot/conduit/pkg/sanitizer"
)

// NewSecurity returns the controller for login, sign-up and logout.
// The processing actions share their form's view and re-render it with an
// error message when the input is rejected.
func NewSecurity(users *service.Users) *conduit.Controller {
	return &conduit.Controller{
		OnBefore: conduit.Auto(func(c conduit.Context) error {
			c.Bag()["errorMessage"] = ""
			return nil
		}),
		Actions: map[string]conduit.Hook{
			"login": conduit.Auto(func(c conduit.Context) error {
				c.Bag()["title"] = "Login"
				return nil
			}),

			"signup": conduit.Auto(func(c conduit.Context) error {
				c.Bag()["title"] = "Sign-up"
				return nil
			}),

			"processLogin": conduit.Manual(func(c conduit.Context, next conduit.Next) error {
				c.Bag()["title"] = "Login"
				if err := c.SetView(".login"); err != nil {
					return err
				}

				username := sanitizer.Text(c.Bag().String("username"))
				if username == "" {
					reject(c, http.StatusBadRequest, "Please enter your username.")
					next(nil)
					return nil
				}

				user, err := users.Authenticate(c, username)
				switch {
				case errors.Is(err, conduit.ErrNotFound):
					reject(c, http.StatusUnauthorized, "That username does not exist.")
					next(nil)
					return nil
				case err != nil:
					next(err)
					return nil
				}

				if err := c.SetCookieSigned(subsystems.SessionCookie, user.ID, subsystems.SessionMaxAge); err != nil {
					next(err)
					return nil
				}
				return c.Redirect(http.StatusFound, htmx.BackURL(c.Request(), "/"))
			}),

			"processSignup": conduit.Manual(func(c conduit.Context, next conduit.Next) error {
				c.Bag()["title"] = "Sign-up"
				if err := c.SetView(".signup"); err != nil {
					return err
				}

				username := sanitizer.Text(c.Bag().String("username"))
				if username == "" {
					reject(c, http.StatusBadRequest, "Please enter your desired username.")
					next(nil)
					return nil
				}

				user, err := users.Create(c, username)
				switch {
				case errors.Is(err, conduit.ErrAlreadyExists):
					reject(c, http.StatusBadRequest, "That username is already in use.")
					next(nil)
					return nil
				case err != nil:
					next(err)
					return nil
				}

				if err := c.SetCookieSigned(subsystems.SessionCookie, user.ID, subsystems.SessionMaxAge); err != nil {
					next(err)
					return nil
				}
				if err := c.SetFlash(GreetingFlash, user.Username); err != nil {
					c.LogWarn("greeting not stored", "error", err)
				}
				return c.Redirect(http.StatusFound, "/")
			}),

			"processLogout": conduit.Auto(func(c conduit.Context) error {
				c.DeleteCookie(subsystems.SessionCookie)
				return c.Redirect(http.StatusFound, "/login")
			}),
		},
	}
}

func reject(c conduit.Context, status int, message string) {
	c.SetStatus(status)
	c.Bag()["errorMessage"] = message
}
