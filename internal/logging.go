package internal

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/conduit/pkg/logger"
)

type dispatchCtxKey struct{}

// dispatchSlot is filled once a route matches. Middleware holds the request
// from before routing, so the slot is placed in the context by the outermost
// middleware and shared by everything derived from it.
type dispatchSlot struct {
	dispatch atomic.Pointer[Dispatch]
}

// withDispatchSlot returns r with a dispatch slot in its context, adding one
// if none is there yet.
func withDispatchSlot(r *http.Request) (*http.Request, *dispatchSlot) {
	if slot, ok := r.Context().Value(dispatchCtxKey{}).(*dispatchSlot); ok {
		return r, slot
	}
	slot := &dispatchSlot{}
	return r.WithContext(context.WithValue(r.Context(), dispatchCtxKey{}, slot)), slot
}

// DispatchFromContext returns the dispatch state stored for a matched route.
// Unmatched requests have none. Middleware sees it once next has returned.
func DispatchFromContext(ctx context.Context) (*Dispatch, bool) {
	slot, ok := ctx.Value(dispatchCtxKey{}).(*dispatchSlot)
	if !ok {
		return nil, false
	}
	d := slot.dispatch.Load()
	return d, d != nil
}

// DispatchExtractor adds the matched handler address to log records as "handler".
func DispatchExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		d, ok := DispatchFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("handler", d.Address.String()), true
	}
}
