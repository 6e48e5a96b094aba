// Package plugin hosts the policy modules that run on each output.
package plugin

import (
	"log/slog"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/grab"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/render"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/view"
)

// Plugin is a policy module bound to one output.
type Plugin interface {
	Name() string
	// Init wires the plugin to its output. An error drops the plugin.
	Init(h *Handle, cfg *config.Config) error
	Fini()
}

// Grabber is implemented by plugins that react to taking and losing the
// input grab.
type Grabber interface {
	OnGrab()
	OnUngrab()
}

// Factory creates a fresh plugin instance.
type Factory func() Plugin

// Output is the slice of an output that plugins drive.
type Output interface {
	ID() uint32
	Bus() *signal.Bus
	Seat() platform.Seat
	Render() *render.Manager

	ActivatePlugin(owner *grab.Interface) bool
	DeactivatePlugin(owner *grab.Interface) bool
	IsPluginActive(name string) bool

	// AddKey and AddButton bind a sequence; the callback only fires while
	// the output is active.
	AddKey(seq string, cb func()) (platform.Binding, error)
	AddButton(seq string, cb func()) (platform.Binding, error)

	FullGeometry() platform.Rect
	Transform() platform.Transform
	SetTransform(t platform.Transform) error

	ActiveView() *view.View
	FocusView(v *view.View, seat platform.Seat)
	ViewAt(x, y int) *view.View
	// WorkspaceViews lists the current workspace's views, top to bottom.
	WorkspaceViews() []*view.View
	Workarea() platform.Rect

	CurrentWorkspace() platform.WorkspaceCoord
	WorkspaceGrid() (columns, rows int)
	SetWorkspace(ws platform.WorkspaceCoord)
}

// Handle is what a plugin receives at Init.
type Handle struct {
	Output Output
	Grab   *grab.Interface
	Logger *slog.Logger
	// Quit asks the daemon to shut down.
	Quit func()

	bindings []platform.Binding
}

// AddKey binds seq on the output. The host removes the binding when the
// plugin fails to initialize or is unloaded.
func (h *Handle) AddKey(seq string, cb func()) (platform.Binding, error) {
	return h.track(h.Output.AddKey(seq, cb))
}

// AddButton is AddKey for pointer buttons.
func (h *Handle) AddButton(seq string, cb func()) (platform.Binding, error) {
	return h.track(h.Output.AddButton(seq, cb))
}

func (h *Handle) track(b platform.Binding, err error) (platform.Binding, error) {
	if err != nil {
		return nil, err
	}
	h.bindings = append(h.bindings, b)
	return b, nil
}

// unbind removes every binding made through h. Removing twice is harmless.
func (h *Handle) unbind() {
	for _, b := range h.bindings {
		b.Remove()
	}
	h.bindings = nil
}
