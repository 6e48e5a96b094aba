// Package view models managed client surfaces and their per-frame effect hooks.
package view

import (
	"github.com/1broseidon/tilewm/internal/platform"
)

// Surface is the engine-side client surface a View wraps.
type Surface interface {
	ID() uint32
	// Configure moves and resizes the surface.
	Configure(r platform.Rect) error
	// SetActivated toggles the surface's activated (focused decoration) state.
	SetActivated(on bool) error
	// Raise restacks the surface above its siblings.
	Raise() error
	// Close asks the client to close gracefully.
	Close() error
}

// Owner is the output a view is attached to.
type Owner interface {
	ID() uint32
}

// Effect is a per-frame hook. Hooks are compared by pointer identity.
type Effect struct {
	fn func()
}

// NewEffect wraps fn as an effect hook.
func NewEffect(fn func()) *Effect {
	return &Effect{fn: fn}
}

// Run invokes the hook.
func (e *Effect) Run() {
	if e != nil && e.fn != nil {
		e.fn()
	}
}

// View is one managed on-screen client surface.
type View struct {
	Surface  Surface
	Geometry platform.Rect

	Mapped     bool
	Fullscreen bool
	Maximized  bool
	Hidden     bool
	Destroyed  bool

	// KeepCount pins the view in its workspace while it is detached.
	KeepCount int

	// Output is the owning output, nil while unattached.
	Output Owner

	effects []*Effect
}

// New creates a mapped view for surface with the given initial geometry.
func New(surface Surface, geometry platform.Rect) *View {
	return &View{
		Surface:  surface,
		Geometry: geometry,
		Mapped:   true,
	}
}

// ID returns the id of the wrapped surface.
func (v *View) ID() uint32 {
	if v == nil || v.Surface == nil {
		return 0
	}
	return v.Surface.ID()
}

// Visible reports whether the view should be composited.
func (v *View) Visible() bool {
	return v.Mapped && !v.Hidden && !v.Destroyed
}

// SetGeometry records the new geometry and configures the surface.
func (v *View) SetGeometry(r platform.Rect) error {
	v.Geometry = r
	if v.Destroyed || v.Surface == nil {
		return nil
	}
	return v.Surface.Configure(r)
}

// Move changes the view origin, keeping its size.
func (v *View) Move(x, y int) error {
	r := v.Geometry
	r.X, r.Y = x, y
	return v.SetGeometry(r)
}

// AddEffect appends a hook to the view's effect list.
func (v *View) AddEffect(e *Effect) {
	v.effects = append(v.effects, e)
}

// RemoveEffect removes every occurrence of e from the view's effect list.
func (v *View) RemoveEffect(e *Effect) {
	v.effects = removeEffect(v.effects, e)
}

// Effects returns a snapshot of the view's effect hooks.
func (v *View) Effects() []*Effect {
	out := make([]*Effect, len(v.effects))
	copy(out, v.effects)
	return out
}

// RunEffects runs a snapshot of the view's hooks in registration order.
func (v *View) RunEffects() {
	for _, e := range v.Effects() {
		e.Run()
	}
}

// Render composites the view into ctx at its current geometry.
func (v *View) Render(ctx platform.Context) {
	v.RenderAt(ctx, v.Geometry)
}

// RenderAt composites the view into ctx at dst.
func (v *View) RenderAt(ctx platform.Context, dst platform.Rect) {
	if v.Surface == nil {
		return
	}
	ctx.DrawSurface(v.Surface.ID(), dst)
}

// removeEffect returns list without any occurrence of e.
func removeEffect(list []*Effect, e *Effect) []*Effect {
	out := list[:0:0]
	for _, h := range list {
		if h != e {
			out = append(out, h)
		}
	}
	return out
}

// EffectList is an ordered list of output-level hooks.
type EffectList struct {
	hooks []*Effect
}

// Add appends e.
func (l *EffectList) Add(e *Effect) {
	l.hooks = append(l.hooks, e)
}

// Remove drops every occurrence of e.
func (l *EffectList) Remove(e *Effect) {
	l.hooks = removeEffect(l.hooks, e)
}

// Len returns the number of registered hooks.
func (l *EffectList) Len() int { return len(l.hooks) }

// Run runs a snapshot of the hooks in registration order.
func (l *EffectList) Run() {
	snapshot := make([]*Effect, len(l.hooks))
	copy(snapshot, l.hooks)
	for _, e := range snapshot {
		e.Run()
	}
}
