package internal

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"time"
)

// stage identifies one step of the request pipeline.
type stage uint8

const (
	stageGlobalBefore stage = iota
	stageSubsystemBefore
	stageControllerBefore
	stageExecute
	stageControllerAfter
	stageSubsystemAfter
	stageGlobalAfter
	stageNotFound
	stageControllerError
	stageSubsystemError
	stageGlobalError
	stageRender
	stageFatal
)

var stageNames = [...]string{
	stageGlobalBefore:     "global_before",
	stageSubsystemBefore:  "subsystem_before",
	stageControllerBefore: "controller_before",
	stageExecute:          "execute",
	stageControllerAfter:  "controller_after",
	stageSubsystemAfter:   "subsystem_after",
	stageGlobalAfter:      "global_after",
	stageNotFound:         "not_found",
	stageControllerError:  "controller_error",
	stageSubsystemError:   "subsystem_error",
	stageGlobalError:      "global_error",
	stageRender:           "render",
	stageFatal:            "fatal",
}

func (s stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

var (
	routeStages = []stage{
		stageGlobalBefore,
		stageSubsystemBefore,
		stageControllerBefore,
		stageExecute,
		stageControllerAfter,
		stageSubsystemAfter,
		stageGlobalAfter,
	}
	errorStages = []stage{
		stageControllerError,
		stageSubsystemError,
		stageGlobalError,
	}
)

// outcome is what a stage decided about the rest of the pipeline.
type outcome uint8

const (
	outcomeAdvance outcome = iota
	outcomeHalt
	outcomeRaise
)

func (o outcome) String() string {
	switch o {
	case outcomeAdvance:
		return "advance"
	case outcomeHalt:
		return "halt"
	case outcomeRaise:
		return "raise"
	}
	return "unknown"
}

// buildDispatchTable registers every route on the router.
// Keys are processed in sorted order so failures are reported deterministically.
func (a *App) buildDispatchTable(routes Routes) error {
	keys := make([]string, 0, len(routes))
	for key := range routes {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	seen := make(map[string]string, len(keys))
	var gets []Route
	for _, key := range keys {
		notation := routes[key]
		route, err := parseRoute(key, notation)
		if err != nil {
			return err
		}
		addr, err := ParseNotation(notation)
		if err != nil {
			return &RouteError{Key: key, Notation: notation, Err: err}
		}

		id := route.Method + " " + route.Pattern()
		if prev, ok := seen[id]; ok {
			return &RouteError{Key: key, Notation: notation, Err: fmt.Errorf("%w: duplicates %q", ErrInvalidRoute, prev)}
		}
		seen[id] = key

		a.registry.ensure(addr)
		if err := a.mountRoute(route, route.Method, addr); err != nil {
			return &RouteError{Key: key, Notation: notation, Err: err}
		}
		if route.Method == http.MethodGet {
			gets = append(gets, route)
		}
		a.routes = append(a.routes, route)
		a.logger.Debug("route registered",
			"route", route.String(),
			"notation", notation,
			"view", addr.ViewPath(),
		)
	}

	// GET routes answer HEAD too, unless HEAD is routed explicitly.
	for _, route := range gets {
		if _, ok := seen[http.MethodHead+" "+route.Pattern()]; ok {
			continue
		}
		addr, _ := ParseNotation(route.Notation)
		if err := a.mountRoute(route, http.MethodHead, addr); err != nil {
			return &RouteError{Key: route.String(), Notation: route.Notation, Err: err}
		}
	}
	return nil
}

// mountRoute registers the route on chi under method, turning chi's pattern
// panics into errors. An empty method matches any.
func (a *App) mountRoute(route Route, method string, addr Address) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidRoute, r)
		}
	}()

	h := a.routeHandler(route, addr)
	if method == "" {
		a.router.Handle(route.Pattern(), h)
		return nil
	}
	a.router.Method(method, route.Pattern(), h)
	return nil
}

// routeHandler initializes the dispatch state of a matched request and runs the pipeline.
func (a *App) routeHandler(route Route, addr Address) http.HandlerFunc {
	label := route.String()
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		defer a.metrics.observe(label, c.responseWriter, time.Now())

		err := c.begin(route, addr, a.defaults)
		if err != nil {
			c.LogDebug("request body rejected", "error", err)
		}
		a.serve(c, err)
	}
}

// unmatchedHandler runs the fallback stages for requests no route matched.
func (a *App) unmatchedHandler(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a)
	defer a.metrics.observe("unmatched", c.responseWriter, time.Now())
	a.serve(c, nil)
}

// serve runs the route stages (for matched requests with no pending error)
// followed by the fallback stages.
func (a *App) serve(c *requestContext, err error) {
	if err == nil && c.dispatch != nil {
		var halted bool
		if halted, err = a.runRoute(c); halted {
			return
		}
	}

	if err == nil && c.dispatch == nil {
		err = NotFound(http.StatusText(http.StatusNotFound))
		a.metrics.stage(stageNotFound, outcomeRaise)
	}

	if err != nil {
		var halted bool
		if halted, err = a.runErrors(c, err); halted {
			return
		}
	}

	if err == nil {
		if c.Written() {
			return
		}
		err = a.render(c)
		if err == nil {
			a.metrics.stage(stageRender, outcomeAdvance)
			return
		}
		a.metrics.stage(stageRender, outcomeRaise)
	}

	a.fatal(c, err)
}

// runRoute runs the before, execute and after stages.
func (a *App) runRoute(c *requestContext) (bool, error) {
	for _, st := range routeStages {
		out, err := a.invoke(c, st, a.hookFor(c, st))
		switch out {
		case outcomeHalt:
			return true, nil
		case outcomeRaise:
			return false, err
		}
	}
	return false, nil
}

// runErrors walks the error stages. It returns halted=true when a hook
// completed the response, or a nil error when a hook resolved it.
func (a *App) runErrors(c *requestContext, err error) (bool, error) {
	for _, st := range errorStages {
		if c.Written() {
			c.LogError("error raised after response was written, aborting", "stage", st.String(), "error", err)
			panic(http.ErrAbortHandler)
		}
		if st == stageGlobalError && c.dispatch == nil {
			c.beginUnmatched(a.defaults)
		}

		c.LogDebug("lifecycle error", "stage", st.String(), "error", err)
		out, next := a.invokeError(c, st, a.errorHookFor(c, st), err)
		switch out {
		case outcomeHalt:
			return true, nil
		case outcomeAdvance:
			return false, nil
		}
		err = next
	}
	return false, err
}

func (a *App) hookFor(c *requestContext, st stage) Hook {
	addr := c.dispatch.Address
	switch st {
	case stageGlobalBefore:
		return a.registry.lifecycle(RootScope).OnBefore
	case stageSubsystemBefore:
		return a.registry.lifecycle(addr.Subsystem).OnBefore
	case stageControllerBefore:
		return a.registry.controller(addr).OnBefore
	case stageExecute:
		return a.registry.controller(addr).Action(addr.Method)
	case stageControllerAfter:
		return a.registry.controller(addr).OnAfter
	case stageSubsystemAfter:
		return a.registry.lifecycle(addr.Subsystem).OnAfter
	case stageGlobalAfter:
		return a.registry.lifecycle(RootScope).OnAfter
	}
	return Hook{}
}

// errorHookFor returns the error hook for st. Unmatched requests only
// reach the global one.
func (a *App) errorHookFor(c *requestContext, st stage) ErrorHook {
	if st == stageGlobalError {
		return a.registry.lifecycle(RootScope).OnError
	}
	if c.dispatch == nil {
		return ErrorHook{}
	}
	addr := c.dispatch.Address
	switch st {
	case stageControllerError:
		return a.registry.controller(addr).OnError
	case stageSubsystemError:
		return a.registry.lifecycle(addr.Subsystem).OnError
	}
	return ErrorHook{}
}

// invoke runs a before/after/action hook. An absent hook advances.
func (a *App) invoke(c *requestContext, st stage, h Hook) (outcome, error) {
	switch h.Mode() {
	case AutoAdvance:
		return a.call(c, st, AutoAdvance, func(Next) error { return h.auto(c) })
	case ManualAdvance:
		return a.call(c, st, ManualAdvance, func(next Next) error { return h.manual(c, next) })
	}
	a.metrics.stage(st, outcomeAdvance)
	return outcomeAdvance, nil
}

// invokeError runs an error hook. An absent hook passes err on.
func (a *App) invokeError(c *requestContext, st stage, h ErrorHook, err error) (outcome, error) {
	switch h.Mode() {
	case AutoAdvance:
		return a.call(c, st, AutoAdvance, func(Next) error { return h.auto(c, err) })
	case ManualAdvance:
		return a.call(c, st, ManualAdvance, func(next Next) error { return h.manual(c, err, next) })
	}
	a.metrics.stage(st, outcomeRaise)
	return outcomeRaise, err
}

// call invokes fn and decides the outcome from the hook's mode, its return
// value, its use of next and whether the response got written.
// Panics become errors, except http.ErrAbortHandler which keeps unwinding.
func (a *App) call(c *requestContext, st stage, mode Mode, fn func(Next) error) (out outcome, err error) {
	var (
		called  bool
		nextErr error
	)
	next := func(e error) {
		if !called {
			called, nextErr = true, e
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
				panic(r)
			}
			c.LogError("lifecycle hook panicked", "stage", st.String(), "panic", r, "stack", string(debug.Stack()))
			out, err = outcomeRaise, &PanicError{Value: r, Stage: st.String()}
		}
		a.metrics.stage(st, out)
	}()

	if ret := fn(next); ret != nil {
		return outcomeRaise, ret
	}

	if mode == AutoAdvance {
		if c.Written() {
			return outcomeHalt, nil
		}
		return outcomeAdvance, nil
	}

	switch {
	case !called:
		return outcomeHalt, nil
	case nextErr != nil:
		return outcomeRaise, nextErr
	}
	return outcomeAdvance, nil
}
