package api

import (
	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/example/subsystems"
	"github.com/dmitrymomot/conduit/pkg/sanitizer"
)

// NewMovies returns the movies controller.
func NewMovies(movies *service.Movies) *conduit.Controller {
	return &conduit.Controller{
		Actions: map[string]conduit.Hook{
			"getMovies": conduit.Auto(func(c conduit.Context) error {
				list, err := movies.List(c, subsystems.User(c).ID)
				if err != nil {
					return err
				}
				c.Bag()["data"] = list
				return nil
			}),

			"createMovie": conduit.Auto(func(c conduit.Context) error {
				name := sanitizer.Text(c.Bag().String("name"))
				id, err := movies.Create(c, subsystems.User(c).ID, name)
				if err != nil {
					return err
				}
				c.Bag()["data"] = id
				return nil
			}),

			"deleteMovie": conduit.Auto(func(c conduit.Context) error {
				if err := movies.Delete(c, subsystems.User(c).ID, c.Bag().String("movieId")); err != nil {
					return err
				}
				c.Bag()["data"] = true
				return nil
			}),
		},
	}
}
