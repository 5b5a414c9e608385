package internal

// registry is the completed, read-only view of the controller and lifecycle
// registries the dispatch table runs against. It is built once in New and
// shared by every request without locking.
type registry struct {
	controllers Controllers
	lifecycles  Lifecycles
}

// newRegistry copies the caller's maps so completing them never mutates
// the originals. Nil entries become empty placeholders.
func newRegistry(controllers Controllers, lifecycles Lifecycles) *registry {
	r := &registry{
		controllers: make(Controllers, len(controllers)),
		lifecycles:  make(Lifecycles, len(lifecycles)+1),
	}
	for subsystem, byName := range controllers {
		dst := make(map[string]*Controller, len(byName))
		for name, ctrl := range byName {
			if ctrl == nil {
				ctrl = &Controller{}
			}
			dst[name] = ctrl
		}
		r.controllers[subsystem] = dst
	}
	for name, lc := range lifecycles {
		if lc == nil {
			lc = &Lifecycle{}
		}
		r.lifecycles[name] = lc
	}
	r.ensureLifecycle(RootScope)
	return r
}

// ensure adds placeholders for every registry entry addr can reach.
func (r *registry) ensure(addr Address) {
	r.ensureLifecycle(addr.Subsystem)
	byName, ok := r.controllers[addr.Subsystem]
	if !ok {
		byName = make(map[string]*Controller)
		r.controllers[addr.Subsystem] = byName
	}
	if _, ok := byName[addr.Controller]; !ok {
		byName[addr.Controller] = &Controller{}
	}
}

func (r *registry) ensureLifecycle(name string) {
	if _, ok := r.lifecycles[name]; !ok {
		r.lifecycles[name] = &Lifecycle{}
	}
}

// lifecycle returns the lifecycle for name, or an empty one.
func (r *registry) lifecycle(name string) *Lifecycle {
	if lc, ok := r.lifecycles[name]; ok {
		return lc
	}
	return &Lifecycle{}
}

// controller returns the controller at addr, or an empty one.
func (r *registry) controller(addr Address) *Controller {
	if ctrl, ok := r.controllers[addr.Subsystem][addr.Controller]; ok {
		return ctrl
	}
	return &Controller{}
}
