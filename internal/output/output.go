// Package output controls one display output: its views, focus, transform,
// plugins and render pipeline.
package output

import (
	"errors"
	"log/slog"
	"math"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/grab"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/render"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/view"
)

var (
	// ErrNoKeyBinder is returned by AddKey when the output has no key binder.
	ErrNoKeyBinder = errors.New("output has no key binder")
	// ErrNoButtonBinder is returned by AddButton when the output has no
	// button binder.
	ErrNoButtonBinder = errors.New("output has no button binder")
)

// ViewSignal is the payload of attach-view and destroy-view.
type ViewSignal struct {
	View *view.View
}

// ResizeSignal is the payload of output-resized.
type ResizeSignal struct {
	Width  int
	Height int
}

// Deps are the collaborators an output is built with.
type Deps struct {
	Config    *config.Config
	Seat      platform.Seat
	Scheduler platform.Scheduler
	Binder    platform.KeyBinder
	Buttons   platform.ButtonBinder
	Loader    plugin.Loader
	Builtins  []plugin.Factory
	// IsActive reports whether the output is the process-wide active output.
	// Nil means always active.
	IsActive func(*Output) bool
	Quit     func()
	Logger   *slog.Logger
}

var _ plugin.Output = (*Output)(nil)

// Output is one display target.
type Output struct {
	handle    platform.OutputHandle
	workspace WorkspaceManager
	bus       *signal.Bus
	arbiter   *grab.Arbiter
	render    *render.Manager
	plugins   *plugin.Host

	seat     platform.Seat
	binder   platform.KeyBinder
	buttons  platform.ButtonBinder
	bindings []platform.Binding
	isActive func(*Output) bool
	logger   *slog.Logger

	activeView *view.View
}

// New builds the output and loads its plugins.
func New(handle platform.OutputHandle, ws WorkspaceManager, deps Deps) *Output {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := &Output{
		handle:    handle,
		workspace: ws,
		bus:       signal.NewBus(),
		seat:      deps.Seat,
		binder:    deps.Binder,
		buttons:   deps.Buttons,
		isActive:  deps.IsActive,
		logger:    logger.With("output", handle.ID()),
	}
	o.arbiter = grab.NewArbiter(o.IsActive)
	o.render = render.New(render.Options{
		Handle:     handle,
		Bus:        o.bus,
		Scheduler:  deps.Scheduler,
		Scene:      ws,
		ShaderPath: cfg.ShaderSrc,
		Logger:     o.logger.With("component", "render"),
	})
	o.plugins = plugin.NewHost(o, cfg, plugin.HostOptions{
		Arbiter:  o.arbiter,
		Builtins: deps.Builtins,
		Loader:   deps.Loader,
		Logger:   o.logger.With("component", "plugins"),
		Quit:     deps.Quit,
	})

	// The engine paints nothing until asked; request the first frame.
	handle.Damage()
	handle.ScheduleRepaint()
	return o
}

func (o *Output) ID() uint32 { return o.handle.ID() }

func (o *Output) Name() string { return o.handle.Name() }

func (o *Output) Handle() platform.OutputHandle { return o.handle }

func (o *Output) Bus() *signal.Bus { return o.bus }

func (o *Output) Seat() platform.Seat { return o.seat }

func (o *Output) Workspace() WorkspaceManager { return o.workspace }

func (o *Output) Render() *render.Manager { return o.render }

func (o *Output) Plugins() *plugin.Host { return o.plugins }

// IsActive reports whether this output is the process-wide active output.
func (o *Output) IsActive() bool {
	return o.isActive == nil || o.isActive(o)
}

// FullGeometry is the whole output rectangle.
func (o *Output) FullGeometry() platform.Rect { return o.handle.Geometry() }

// ScreenSize is the current pixel size, transform applied.
func (o *Output) ScreenSize() (width, height int) {
	g := o.handle.Geometry()
	return g.Width, g.Height
}

func (o *Output) Transform() platform.Transform { return o.handle.Transform() }

func (o *Output) Workarea() platform.Rect { return o.workspace.Workarea() }

func (o *Output) CurrentWorkspace() platform.WorkspaceCoord { return o.workspace.CurrentWorkspace() }

// WorkspaceGrid returns the workspace grid size.
func (o *Output) WorkspaceGrid() (columns, rows int) { return o.workspace.GridSize() }

// SetWorkspace switches the current workspace and damages the output.
// Coordinates outside the grid are ignored.
func (o *Output) SetWorkspace(ws platform.WorkspaceCoord) {
	if ws == o.workspace.CurrentWorkspace() {
		return
	}
	o.workspace.SetWorkspace(ws)
	o.handle.Damage()
}

// WorkspaceViews lists the current workspace's views, top to bottom.
func (o *Output) WorkspaceViews() []*view.View {
	return o.workspace.ViewsOnWorkspace(o.workspace.CurrentWorkspace())
}

func (o *Output) ActiveView() *view.View { return o.activeView }

// AttachView adopts v, raises it and announces it.
func (o *Output) AttachView(v *view.View) {
	v.Output = o
	o.workspace.BringToFront(v)
	o.bus.Emit(signal.AttachView, ViewSignal{View: v})
}

// DetachView announces v's removal, then drops it from the workspace unless
// it is pinned, and moves focus off it if it was active.
func (o *Output) DetachView(v *view.View) {
	o.bus.Emit(signal.DestroyView, ViewSignal{View: v})

	if v.KeepCount <= 0 {
		o.workspace.ViewRemoved(v)
	}
	if o.activeView != v {
		return
	}

	var next *view.View
	for _, w := range o.WorkspaceViews() {
		if w != v && w.Mapped {
			next = w
			break
		}
	}
	switch {
	case next == nil:
		o.activeView = nil
	case v.KeepCount > 0:
		// The pinning caller manages stacking itself.
		o.SetActiveView(next)
	default:
		o.FocusView(next, o.seat)
	}
}

// SetActiveView moves the activated state to v. A nil v clears it.
func (o *Output) SetActiveView(v *view.View) {
	if v == o.activeView {
		return
	}
	if prev := o.activeView; prev != nil && !prev.Destroyed && prev.Surface != nil {
		if err := prev.Surface.SetActivated(false); err != nil {
			o.logger.Debug("failed to deactivate view", "view", prev.ID(), "error", err)
		}
	}

	o.activeView = v
	if v == nil || v.Surface == nil {
		return
	}
	if err := v.Surface.SetActivated(true); err != nil {
		o.logger.Debug("failed to activate view", "view", v.ID(), "error", err)
	}
	if o.seat != nil {
		if err := o.seat.SetKeyboardFocus(v.ID()); err != nil {
			o.logger.Warn("failed to set keyboard focus", "view", v.ID(), "error", err)
		}
	}
}

// FocusView activates v and raises it. A nil v clears keyboard focus on seat.
func (o *Output) FocusView(v *view.View, seat platform.Seat) {
	o.SetActiveView(v)
	if v != nil {
		o.logger.Debug("focus", "view", v.ID())
		o.BringToFront(v)
		return
	}
	o.logger.Debug("focus", "view", 0)
	if seat != nil {
		if err := seat.SetKeyboardFocus(0); err != nil {
			o.logger.Warn("failed to clear keyboard focus", "error", err)
		}
	}
}

// BringToFront raises v in the workspace and on screen.
func (o *Output) BringToFront(v *view.View) {
	o.workspace.BringToFront(v)
	if v.Surface != nil && !v.Destroyed {
		if err := v.Surface.Raise(); err != nil {
			o.logger.Debug("failed to raise view", "view", v.ID(), "error", err)
		}
	}
}

// TopView returns the active view, or else the topmost view.
func (o *Output) TopView() *view.View {
	if o.activeView != nil {
		return o.activeView
	}
	var top *view.View
	o.workspace.ForEachView(func(v *view.View) {
		if top == nil {
			top = v
		}
	})
	return top
}

// ViewAt returns the topmost visible view containing x, y.
func (o *Output) ViewAt(x, y int) *view.View {
	var chosen *view.View
	p := platform.Point{X: x, Y: y}
	o.workspace.ForEachView(func(v *view.View) {
		if chosen == nil && v.Visible() && v.Geometry.Contains(p) {
			chosen = v
		}
	})
	return chosen
}

// SetTransform rotates the output, resizes it and rescales every view.
func (o *Output) SetTransform(t platform.Transform) error {
	old := o.handle.Geometry()
	w, h := o.handle.DeviceSize()
	if t.SwapsAxes() {
		w, h = h, w
	}
	if err := o.handle.Reconfigure(t, w, h); err != nil {
		return err
	}
	o.render.Resize()
	o.handle.NotifyClients()
	o.handle.Damage()

	o.bus.Emit(signal.OutputResized, ResizeSignal{Width: w, Height: h})
	o.EnsurePointer()

	full := o.FullGeometry()
	o.workspace.ForEachView(func(v *view.View) {
		var err error
		switch {
		case v.Fullscreen:
			err = v.SetGeometry(full)
		case v.Maximized:
			err = v.SetGeometry(o.workspace.Workarea())
		default:
			err = v.SetGeometry(rescale(v.Geometry, old, full))
		}
		if err != nil {
			o.logger.Debug("failed to rescale view", "view", v.ID(), "error", err)
		}
	})
	return nil
}

// rescale maps r from output geometry from to output geometry to,
// proportionally.
func rescale(r, from, to platform.Rect) platform.Rect {
	if from.Width <= 0 || from.Height <= 0 {
		return r
	}
	sx := float64(to.Width) / float64(from.Width)
	sy := float64(to.Height) / float64(from.Height)
	return platform.Rect{
		X:      to.X + int(math.Round(float64(r.X-from.X)*sx)),
		Y:      to.Y + int(math.Round(float64(r.Y-from.Y)*sy)),
		Width:  int(math.Round(float64(r.Width) * sx)),
		Height: int(math.Round(float64(r.Height) * sy)),
	}
}

// EnsurePointer warps the pointer to the output center if it left the output.
func (o *Output) EnsurePointer() {
	if o.seat == nil {
		return
	}
	p, err := o.seat.Pointer()
	if err != nil {
		o.logger.Debug("failed to query pointer", "error", err)
		return
	}
	g := o.FullGeometry()
	if g.Contains(p) {
		return
	}
	if err := o.seat.WarpPointer(g.Center()); err != nil {
		o.logger.Warn("failed to warp pointer", "error", err)
	}
}

func (o *Output) ActivatePlugin(owner *grab.Interface) bool { return o.arbiter.Activate(owner) }

func (o *Output) DeactivatePlugin(owner *grab.Interface) bool { return o.arbiter.Deactivate(owner) }

func (o *Output) IsPluginActive(name string) bool { return o.arbiter.IsActive(name) }

// InputGrab returns the plugin interface holding the input grab, if any.
func (o *Output) InputGrab() *grab.Interface { return o.arbiter.InputGrab() }

// ActivePlugins lists the names of the active grabs.
func (o *Output) ActivePlugins() []string { return o.arbiter.Active() }

// AddKey binds seq. The callback only fires while this output is active.
func (o *Output) AddKey(seq string, cb func()) (platform.Binding, error) {
	if o.binder == nil {
		return nil, ErrNoKeyBinder
	}
	return o.track(o.binder.BindKey(seq, o.whileActive(cb)))
}

// AddButton binds a pointer button sequence such as "Mod4-1". Like AddKey,
// the callback only fires while this output is active.
func (o *Output) AddButton(seq string, cb func()) (platform.Binding, error) {
	if o.buttons == nil {
		return nil, ErrNoButtonBinder
	}
	return o.track(o.buttons.BindButton(seq, o.whileActive(cb)))
}

func (o *Output) whileActive(cb func()) func() {
	return func() {
		if o.IsActive() {
			cb()
		}
	}
}

// track keeps b for removal at Close.
func (o *Output) track(b platform.Binding, err error) (platform.Binding, error) {
	if err != nil {
		return nil, err
	}
	o.bindings = append(o.bindings, b)
	return b, nil
}

// Repaint runs the pre-paint effects and paints one frame.
func (o *Output) Repaint(damage platform.Region) {
	o.render.PrePaint()
	o.render.Paint(damage)
}

// Close tears down the plugins, bindings and render state.
func (o *Output) Close() {
	o.plugins.Close()
	for _, b := range o.bindings {
		b.Remove()
	}
	o.bindings = nil
	o.render.Close()
}
