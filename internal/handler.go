package internal

import (
	"context"
	"io"
)

// HandlerFunc is the signature middleware wraps.
// Returning a non-nil error hands it to the app's middleware error responder.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware runs around route matching, so it sees every request,
// including ones no route matches.
//
// Example:
//
//	func NoCache(next conduit.HandlerFunc) conduit.HandlerFunc {
//	    return func(c conduit.Context) error {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Renderer renders a view by identifier. data is the request's Bag.
// View identifiers look like "subsystems/desktop/views/security/login".
type Renderer interface {
	Render(ctx context.Context, w io.Writer, view string, data map[string]any) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer, view string, data map[string]any) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer, view string, data map[string]any) error {
	return f(ctx, w, view, data)
}
