// Package core is the process-wide registry of outputs and views. A Context
// is built once by the daemon and owned by the event loop.
package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/view"
	"github.com/1broseidon/tilewm/internal/workspace"
)

// ErrNoOutput is returned when an operation needs an output and none exists.
var ErrNoOutput = errors.New("no output available")

// Options are the collaborators shared by every output.
type Options struct {
	Config    *config.Config
	Seat      platform.Seat
	Scheduler platform.Scheduler
	Binder    platform.KeyBinder
	Buttons   platform.ButtonBinder
	Loader    plugin.Loader
	Builtins  []plugin.Factory
	Logger    *slog.Logger
	// Quit is handed to plugins to stop the daemon.
	Quit func()
	// Spawn starts a shell command. Defaults to /bin/sh -c.
	Spawn func(command string) error
}

// Context holds the outputs, the active output and the view table.
type Context struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	outputs []*output.Output
	active  *output.Output
	views   map[uint32]*view.View
}

// New creates an empty context.
func New(opts Options) *Context {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Spawn == nil {
		opts.Spawn = spawnShell
	}
	return &Context{
		cfg:    opts.Config,
		opts:   opts,
		logger: opts.Logger.With("component", "core"),
		views:  make(map[uint32]*view.View),
	}
}

// Config returns the configuration the context was built with.
func (c *Context) Config() *config.Config { return c.cfg }

// Seat returns the shared seat.
func (c *Context) Seat() platform.Seat { return c.opts.Seat }

// AddOutput builds an output for handle. The first output becomes active.
func (c *Context) AddOutput(handle platform.OutputHandle) *output.Output {
	ws := workspace.New(handle.Geometry, c.cfg.Workspaces.Columns, c.cfg.Workspaces.Rows)
	o := output.New(handle, ws, output.Deps{
		Config:    c.cfg,
		Seat:      c.opts.Seat,
		Scheduler: c.opts.Scheduler,
		Binder:    c.opts.Binder,
		Buttons:   c.opts.Buttons,
		Loader:    c.opts.Loader,
		Builtins:  c.opts.Builtins,
		IsActive:  c.IsActiveOutput,
		Quit:      c.opts.Quit,
		Logger:    c.opts.Logger,
	})
	c.outputs = append(c.outputs, o)
	c.logger.Info("output added", "output", o.ID(), "name", o.Name(), "plugins", o.Plugins().Len())

	if c.active == nil {
		c.FocusOutput(o)
	}
	return o
}

// RemoveOutput tears o down. Its views move to the next output, or are
// detached when o was the last one.
func (c *Context) RemoveOutput(o *output.Output) {
	idx := c.indexOf(o)
	if idx < 0 {
		return
	}
	var next *output.Output
	if len(c.outputs) > 1 {
		next = c.outputs[(idx+1)%len(c.outputs)]
	}

	for _, v := range c.sortedViews() {
		if ownerOf(v) != o {
			continue
		}
		if next != nil {
			c.MoveViewToOutput(v, o, next)
		} else {
			o.DetachView(v)
			v.Output = nil
		}
	}

	if c.active == o {
		c.active = nil
		if next != nil {
			c.FocusOutput(next)
		}
	}
	o.Close()
	c.outputs = append(c.outputs[:idx:idx], c.outputs[idx+1:]...)
	c.logger.Info("output removed", "output", o.ID())
}

// Output returns the output with the given id, or nil.
func (c *Context) Output(id uint32) *output.Output {
	for _, o := range c.outputs {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

// Outputs returns the outputs in hotplug order.
func (c *Context) Outputs() []*output.Output {
	out := make([]*output.Output, len(c.outputs))
	copy(out, c.outputs)
	return out
}

func (c *Context) ActiveOutput() *output.Output { return c.active }

func (c *Context) IsActiveOutput(o *output.Output) bool {
	return o != nil && o == c.active
}

// FocusOutput makes o the active output, focuses its top view and emits
// focus-output on it.
func (c *Context) FocusOutput(o *output.Output) {
	if o == nil || o == c.active {
		return
	}
	c.active = o
	o.EnsurePointer()
	if top := o.TopView(); top != nil {
		o.FocusView(top, c.opts.Seat)
	}
	o.Bus().Emit(signal.FocusOutput, o)
	c.logger.Debug("output focused", "output", o.ID())
}

// NextOutput returns the output after the active one, wrapping around.
func (c *Context) NextOutput() *output.Output {
	if len(c.outputs) == 0 {
		return nil
	}
	idx := c.indexOf(c.active)
	return c.outputs[(idx+1)%len(c.outputs)]
}

func (c *Context) ForEachOutput(fn func(*output.Output)) {
	for _, o := range c.Outputs() {
		fn(o)
	}
}

// AddView registers a view for surface and attaches it to the active output.
func (c *Context) AddView(surface view.Surface, geometry platform.Rect) (*view.View, error) {
	if c.active == nil {
		return nil, ErrNoOutput
	}
	if existing := c.views[surface.ID()]; existing != nil {
		return existing, nil
	}
	v := view.New(surface, geometry)
	c.views[surface.ID()] = v
	c.active.AttachView(v)
	return v, nil
}

// FindView looks a view up by surface id.
func (c *Context) FindView(id uint32) *view.View {
	return c.views[id]
}

// Views returns every registered view ordered by id.
func (c *Context) Views() []*view.View { return c.sortedViews() }

// EraseView drops v from the table and detaches it from its output.
func (c *Context) EraseView(v *view.View) {
	if v == nil {
		return
	}
	delete(c.views, v.ID())
	if o := ownerOf(v); o != nil {
		o.DetachView(v)
	}
}

// DestroyView marks v destroyed and erases it.
func (c *Context) DestroyView(v *view.View) {
	if v == nil {
		return
	}
	v.Destroyed = true
	v.Mapped = false
	c.EraseView(v)
}

// FocusView focuses v on its output, activating that output first.
func (c *Context) FocusView(v *view.View, seat platform.Seat) {
	if seat == nil {
		seat = c.opts.Seat
	}
	if v == nil {
		if c.active != nil {
			c.active.FocusView(nil, seat)
		}
		return
	}
	o := ownerOf(v)
	if o == nil {
		return
	}
	c.FocusOutput(o)
	o.FocusView(v, seat)
}

// CloseView asks v's client to close.
func (c *Context) CloseView(v *view.View) error {
	if v == nil || v.Surface == nil {
		return nil
	}
	return v.Surface.Close()
}

// MoveViewToOutput moves v from one output to another, keeping its position
// relative to the output origin, and focuses it there.
func (c *Context) MoveViewToOutput(v *view.View, from, to *output.Output) {
	if from == to || to == nil {
		return
	}
	if from != nil {
		from.DetachView(v)
		src, dst := from.FullGeometry(), to.FullGeometry()
		if err := v.Move(v.Geometry.X-src.X+dst.X, v.Geometry.Y-src.Y+dst.Y); err != nil {
			c.logger.Debug("failed to move view", "view", v.ID(), "error", err)
		}
	}
	to.AttachView(v)
	to.FocusView(v, c.opts.Seat)
}

// Run starts command through the shell without waiting for it.
func (c *Context) Run(command string) error {
	if err := c.opts.Spawn(command); err != nil {
		return fmt.Errorf("run %q: %w", command, err)
	}
	c.logger.Info("command started", "command", command)
	return nil
}

func spawnShell(command string) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Close tears down every output.
func (c *Context) Close() {
	for _, o := range c.outputs {
		o.Close()
	}
	c.outputs = nil
	c.active = nil
}

func (c *Context) indexOf(o *output.Output) int {
	for i, x := range c.outputs {
		if x == o {
			return i
		}
	}
	return -1
}

func (c *Context) sortedViews() []*view.View {
	out := make([]*view.View, 0, len(c.views))
	for _, v := range c.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func ownerOf(v *view.View) *output.Output {
	o, _ := v.Output.(*output.Output)
	return o
}
