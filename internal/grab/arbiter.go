// Package grab arbitrates the exclusive input/render grabs that plugins take
// on an output.
package grab

// Interface is the exclusivity token a plugin holds on one output.
type Interface struct {
	Name string
	// Compat lists the plugin names this interface may be active alongside.
	Compat map[string]struct{}
	// CompatAll makes the interface compatible with every other plugin.
	CompatAll bool

	// OnGrab and OnUngrab are the owner's input grab callbacks.
	OnGrab   func()
	OnUngrab func()

	arbiter *Arbiter
	grabbed bool
}

// NewInterface returns an interface owned by name and bound to arbiter.
func NewInterface(name string, arbiter *Arbiter) *Interface {
	return &Interface{
		Name:    name,
		Compat:  make(map[string]struct{}),
		arbiter: arbiter,
	}
}

// AddCompat marks the given plugin names as compatible with this interface.
func (i *Interface) AddCompat(names ...string) {
	if i.Compat == nil {
		i.Compat = make(map[string]struct{}, len(names))
	}
	for _, n := range names {
		i.Compat[n] = struct{}{}
	}
}

func (i *Interface) compatibleWith(other *Interface) bool {
	if i.CompatAll {
		return true
	}
	_, ok := i.Compat[other.Name]
	return ok
}

// Grab takes the input grab. It fails unless the interface is currently
// active on its arbiter.
func (i *Interface) Grab() bool {
	if i.arbiter == nil || !i.arbiter.contains(i) {
		return false
	}
	if i.grabbed {
		return true
	}
	i.grabbed = true
	if i.OnGrab != nil {
		i.OnGrab()
	}
	return true
}

// Ungrab releases the input grab, if held.
func (i *Interface) Ungrab() {
	if !i.grabbed {
		return
	}
	i.grabbed = false
	if i.OnUngrab != nil {
		i.OnUngrab()
	}
}

// Grabbed reports whether the interface holds the input grab.
func (i *Interface) Grabbed() bool { return i.grabbed }

// Arbiter tracks the active grabs of one output.
type Arbiter struct {
	// isActiveOutput reports whether the owning output is the process-wide
	// active output.
	isActiveOutput func() bool
	active         []*Interface
}

// NewArbiter creates an arbiter. isActiveOutput may be nil, in which case the
// output is always considered active.
func NewArbiter(isActiveOutput func() bool) *Arbiter {
	return &Arbiter{isActiveOutput: isActiveOutput}
}

// Activate adds owner to the active set when it is compatible, in both
// directions, with every grab already active. Activation is all-or-nothing.
func (a *Arbiter) Activate(owner *Interface) bool {
	if owner == nil {
		return false
	}
	if a.isActiveOutput != nil && !a.isActiveOutput() {
		return false
	}
	if a.contains(owner) {
		return true
	}
	for _, act := range a.active {
		if !act.compatibleWith(owner) || !owner.compatibleWith(act) {
			return false
		}
	}
	a.active = append(a.active, owner)
	return true
}

// Deactivate releases owner's grab and removes it from the active set. It
// always succeeds, whether or not owner was active.
func (a *Arbiter) Deactivate(owner *Interface) bool {
	if owner == nil {
		return true
	}
	owner.Ungrab()
	for i, act := range a.active {
		if act == owner {
			a.active = append(a.active[:i], a.active[i+1:]...)
			break
		}
	}
	return true
}

// IsActive reports whether a grab owned by name is active.
func (a *Arbiter) IsActive(name string) bool {
	for _, act := range a.active {
		if act.Name == name {
			return true
		}
	}
	return false
}

// InputGrab returns the active interface holding the input grab, or nil.
func (a *Arbiter) InputGrab() *Interface {
	for _, act := range a.active {
		if act.grabbed {
			return act
		}
	}
	return nil
}

// Active returns the names of the active grabs in activation order.
func (a *Arbiter) Active() []string {
	names := make([]string, len(a.active))
	for i, act := range a.active {
		names[i] = act.Name
	}
	return names
}

func (a *Arbiter) contains(owner *Interface) bool {
	for _, act := range a.active {
		if act == owner {
			return true
		}
	}
	return false
}
