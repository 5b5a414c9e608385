package internal

// Mode declares how a hook hands control back to the engine.
type Mode uint8

const (
	// AutoAdvance hooks return and let the engine continue, unless they
	// already wrote the response.
	AutoAdvance Mode = iota + 1

	// ManualAdvance hooks call next themselves. Returning without calling
	// next halts the pipeline.
	ManualAdvance
)

func (m Mode) String() string {
	switch m {
	case AutoAdvance:
		return "auto"
	case ManualAdvance:
		return "manual"
	}
	return "none"
}

// Next continues the pipeline from a ManualAdvance hook.
// next(nil) advances to the following stage; next(err) enters (or, in an
// error stage, keeps) the error path. Only the first call counts, and it
// must happen before the hook returns.
type Next func(err error)

// Hook is an optional before/after/action handler.
// The zero value means "no hook" and the engine skips the stage.
type Hook struct {
	auto   func(c Context) error
	manual func(c Context, next Next) error
}

// Auto wraps fn as an AutoAdvance hook.
//
// Example:
//
//	OnBefore: conduit.Auto(func(c conduit.Context) error {
//	    c.Bag()["title"] = "Login"
//	    return nil
//	})
func Auto(fn func(c Context) error) Hook {
	return Hook{auto: fn}
}

// Manual wraps fn as a ManualAdvance hook.
//
// Example:
//
//	"processLogout": conduit.Manual(func(c conduit.Context, next conduit.Next) error {
//	    c.DeleteCookie("sessionId")
//	    return c.Redirect(http.StatusFound, "/login")
//	})
func Manual(fn func(c Context, next Next) error) Hook {
	return Hook{manual: fn}
}

// IsZero reports whether the hook is absent.
func (h Hook) IsZero() bool {
	return h.auto == nil && h.manual == nil
}

// Mode returns the hook's advance mode, or 0 for an absent hook.
func (h Hook) Mode() Mode {
	switch {
	case h.auto != nil:
		return AutoAdvance
	case h.manual != nil:
		return ManualAdvance
	}
	return 0
}

// ErrorHook is an optional error handler. It receives the pending error.
//
// An AutoAdvance error hook that returns nil without writing resolves the
// error and hands over to the view renderer; returning an error passes
// that error on to the next error stage.
type ErrorHook struct {
	auto   func(c Context, err error) error
	manual func(c Context, err error, next Next) error
}

// AutoError wraps fn as an AutoAdvance error hook.
func AutoError(fn func(c Context, err error) error) ErrorHook {
	return ErrorHook{auto: fn}
}

// ManualError wraps fn as a ManualAdvance error hook.
func ManualError(fn func(c Context, err error, next Next) error) ErrorHook {
	return ErrorHook{manual: fn}
}

// IsZero reports whether the hook is absent.
func (h ErrorHook) IsZero() bool {
	return h.auto == nil && h.manual == nil
}

// Mode returns the hook's advance mode, or 0 for an absent hook.
func (h ErrorHook) Mode() Mode {
	switch {
	case h.auto != nil:
		return AutoAdvance
	case h.manual != nil:
		return ManualAdvance
	}
	return 0
}

// Lifecycle holds the hooks wrapping every controller of a subsystem,
// or of all subsystems when registered under RootScope.
type Lifecycle struct {
	OnBefore Hook
	OnAfter  Hook
	OnError  ErrorHook
}

// Controller holds controller-level hooks and the named actions routes point at.
type Controller struct {
	Actions  map[string]Hook
	OnBefore Hook
	OnAfter  Hook
	OnError  ErrorHook
}

// Action returns the named action, or the zero Hook.
func (c *Controller) Action(name string) Hook {
	if c == nil {
		return Hook{}
	}
	return c.Actions[name]
}

// Controllers maps subsystem name to controller name to controller.
type Controllers map[string]map[string]*Controller

// Lifecycles maps subsystem name (or RootScope) to its lifecycle hooks.
type Lifecycles map[string]*Lifecycle
