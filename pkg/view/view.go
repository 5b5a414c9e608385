package view

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by a renderer that has no view with the given id.
var ErrNotFound = errors.New("view: not found")

// Renderer renders the view identified by id with data.
// It has the same shape as conduit.Renderer.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, id string, data map[string]any) error
}

// Chain tries each renderer in order and uses the first that knows the view.
type Chain []Renderer

func (c Chain) Render(ctx context.Context, w io.Writer, id string, data map[string]any) error {
	for _, r := range c {
		err := r.Render(ctx, w, id, data)
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return notFound(id)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}
