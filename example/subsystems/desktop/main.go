package desktop

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/example/subsystems"
	"github.com/dmitrymomot/conduit/pkg/cookie"
)

// GreetingFlash is the flash key set after sign-up.
const GreetingFlash = "greeting"

// NewMain returns the controller behind the movie list page.
// Every action requires a signed-in user.
func NewMain(movies *service.Movies) *conduit.Controller {
	return &conduit.Controller{
		OnBefore: conduit.Auto(func(c conduit.Context) error {
			if subsystems.User(c).IsAuthenticated {
				return nil
			}
			return c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request().URL.RequestURI()))
		}),
		Actions: map[string]conduit.Hook{
			"default": conduit.Auto(func(c conduit.Context) error {
				user := subsystems.User(c)
				list, err := movies.List(c, user.ID)
				if err != nil {
					return err
				}
				c.Bag()["title"] = "Movies"
				c.Bag()["movies"] = list

				var greeting string
				switch err := c.Flash(GreetingFlash, &greeting); {
				case err == nil:
					c.Bag()["greeting"] = greeting
				case !errors.Is(err, cookie.ErrNotFound):
					c.LogWarn("unreadable flash", "error", err)
				}
				return nil
			}),
		},
	}
}
