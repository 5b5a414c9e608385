// Package internal provides the core types and implementation for the conduit framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/conduit"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: the dispatch table plus HTTP server lifecycle
//   - Address: a "subsystem:controller.method" handler address, parsed by ParseNotation
//   - Controller: optional OnBefore/OnAfter/OnError hooks plus named Actions
//   - Lifecycle: optional OnBefore/OnAfter/OnError hooks for a subsystem, or for all of them under RootScope
//   - Hook, ErrorHook: hook values built with Auto/Manual and AutoError/ManualError
//   - Context: request/response access, dispatch state, the data Bag and SetView
//   - Renderer: renders "subsystems/{subsystem}/views/{controller}/{method}" with the Bag as data
//
// # Request Pipeline
//
// A request matching a route runs these stages in order:
//
//	global before -> subsystem before -> controller before -> action ->
//	controller after -> subsystem after -> global after
//
// followed by, for every request:
//
//	not-found detector -> controller error -> subsystem error -> global error ->
//	render -> fatal
//
// Error stages only run while an error is pending; render only runs when
// none is. Absent hooks are skipped: a missing before/after hook advances,
// a missing error hook passes the error on.
//
// # Advance Modes
//
// Every hook declares how it continues the pipeline:
//
//	// AutoAdvance: return nil to continue, an error to fail.
//	conduit.Auto(func(c conduit.Context) error {
//	    c.Bag()["title"] = "Login"
//	    return nil
//	})
//
//	// ManualAdvance: call next to continue; return without calling it to stop.
//	conduit.Manual(func(c conduit.Context, next conduit.Next) error {
//	    user, err := users.Authenticate(c, c.Bag().String("username"))
//	    if err != nil {
//	        next(err)
//	        return nil
//	    }
//	    return c.Redirect(http.StatusFound, "/")
//	})
//
// An AutoAdvance hook that writes the response stops the pipeline as well.
// An error hook that advances without error resolves the error, and the
// view renderer runs next.
//
// # Views
//
// The view address starts as the matched route's address. Hooks redirect
// rendering with SetView:
//
//	c.SetView(".login")                  // same subsystem and controller
//	c.SetView("security.login")          // same subsystem
//	c.SetView("common:error.notfound")   // absolute
//
// # Data Bag
//
// Each request gets one Bag seeded from, in increasing precedence, the
// app-wide defaults, query parameters, path parameters and body fields.
// Hooks read input from it and stage output in it; the renderer receives it.
package internal
