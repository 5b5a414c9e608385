package internal

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
)

// render renders the current view address with the bag as template data.
// Output is buffered so a failing template leaves the response untouched
// for the fatal responder.
func (a *App) render(c *requestContext) error {
	view := c.View()
	if !view.Complete() {
		return fmt.Errorf("%w: %q", ErrIncompleteView, view.String())
	}
	if a.renderer == nil {
		return ErrNoRenderer
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(c, &buf, view.ViewPath(), c.Bag()); err != nil {
		return fmt.Errorf("render %s: %w", view.ViewPath(), err)
	}

	if c.response.Header().Get("Content-Type") == "" {
		c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	c.response.WriteHeader(c.Status())
	_, err := buf.WriteTo(c.response)
	return err
}

// fatal is the last stage. It logs err and sends a generic 500, or aborts
// the connection when the response is already on its way.
func (a *App) fatal(c *requestContext, err error) {
	if err == nil {
		err = errors.New("request produced no response")
	}
	c.LogError("fatal error", "error", err)
	a.metrics.stage(stageFatal, outcomeHalt)

	if c.Written() {
		panic(http.ErrAbortHandler)
	}
	_ = c.String(http.StatusInternalServerError, "Unexpected Error")
}
