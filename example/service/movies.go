package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/pkg/id"
	"github.com/dmitrymomot/conduit/pkg/store"
)

// Movie is an entry in a user's list.
type Movie struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Movies manages per-user movie lists, stored sorted by title with a
// leading "a" or "the" ignored.
type Movies struct {
	lists store.Store[[]Movie]
}

// NewMovies creates the movie service. Lists are keyed by user ID.
func NewMovies(lists store.Store[[]Movie]) *Movies {
	return &Movies{lists: lists}
}

// Create adds a movie to the user's list and returns its ID.
func (s *Movies) Create(ctx context.Context, userID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", conduit.InvalidArgument("movie name is required")
	}

	m := Movie{ID: id.NewShortID(), Name: name}
	err := s.lists.Update(ctx, userID, func(list []Movie, _ bool) ([]Movie, error) {
		list = append(list, m)
		slices.SortStableFunc(list, func(a, b Movie) int {
			return cmp.Compare(sortKey(a.Name), sortKey(b.Name))
		})
		return list, nil
	})
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// Delete removes a movie from the user's list.
func (s *Movies) Delete(ctx context.Context, userID, movieID string) error {
	return s.lists.Update(ctx, userID, func(list []Movie, _ bool) ([]Movie, error) {
		i := slices.IndexFunc(list, func(m Movie) bool { return m.ID == movieID })
		if i < 0 {
			return nil, conduit.NotFound("movie not found")
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// List returns the user's movies in display order. A user without movies
// gets an empty list.
func (s *Movies) List(ctx context.Context, userID string) ([]Movie, error) {
	list, err := s.lists.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return []Movie{}, nil
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Movie{}
	}
	return list, nil
}

func sortKey(name string) string {
	key := strings.ToLower(name)
	for _, article := range []string{"a ", "the "} {
		if rest, ok := strings.CutPrefix(key, article); ok {
			return rest
		}
	}
	return key
}
