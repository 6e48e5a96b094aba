// Package render drives the per-output frame pipeline: the lazily created
// presentation context, the installed renderer, per-frame effect hooks and
// offscreen workspace capture.
package render

import (
	"log/slog"

	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/view"
)

// Renderer draws one frame into ctx.
type Renderer func(ctx platform.Context)

// Scene is the workspace state the default renderer and streams read.
type Scene interface {
	// Background returns the current workspace background view, or nil.
	Background() *view.View
	// ForEachViewReverse walks stacked views bottom to top.
	ForEachViewReverse(fn func(*view.View))
	// RenderableViews lists the views visible on ws, top to bottom, with the
	// background last.
	RenderableViews(ws platform.WorkspaceCoord) []*view.View
	CurrentWorkspace() platform.WorkspaceCoord
}

type Options struct {
	Handle     platform.OutputHandle
	Bus        *signal.Bus
	Scheduler  platform.Scheduler
	Scene      Scene
	ShaderPath string
	Logger     *slog.Logger
}

// Manager owns one output's rendering state.
type Manager struct {
	handle     platform.OutputHandle
	bus        *signal.Bus
	sched      platform.Scheduler
	scene      Scene
	shaderPath string
	logger     *slog.Logger

	ctx   platform.Context
	dirty bool

	renderer       Renderer
	autoRedraw     bool
	effects        view.EffectList
	streamsRunning int
}

// New creates a manager with no renderer installed, so frames go through the
// engine until a plugin or the daemon sets one.
func New(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bus := opts.Bus
	if bus == nil {
		bus = signal.NewBus()
	}
	return &Manager{
		handle:     opts.Handle,
		bus:        bus,
		sched:      opts.Scheduler,
		scene:      opts.Scene,
		shaderPath: opts.ShaderPath,
		logger:     logger,
		dirty:      true,
	}
}

// SetRenderer installs r. A nil r installs the default renderer.
func (m *Manager) SetRenderer(r Renderer) {
	if r == nil {
		r = m.defaultRenderer
	}
	m.renderer = r
}

// ResetRenderer installs the default renderer and requests a full repaint.
func (m *Manager) ResetRenderer() {
	m.renderer = m.defaultRenderer
	m.handle.Damage()
	m.handle.ScheduleRepaint()
}

// HasRenderer reports whether frames go through an installed renderer rather
// than the engine.
func (m *Manager) HasRenderer() bool { return m.renderer != nil }

// AutoRedraw toggles continuous redraw. Turning it on kicks off the first
// repaint from the idle queue.
func (m *Manager) AutoRedraw(on bool) {
	if on == m.autoRedraw {
		return
	}
	m.autoRedraw = on
	if on {
		m.scheduleIdleRepaint()
	}
}

func (m *Manager) AutoRedrawEnabled() bool { return m.autoRedraw }

// Paint renders one frame. It is called from the engine's repaint trigger.
func (m *Manager) Paint(damage platform.Region) {
	defer func() {
		if m.autoRedraw {
			m.scheduleIdleRepaint()
		}
	}()

	ctx, err := m.context()
	if err != nil || m.renderer == nil {
		m.handle.Repaint(damage)
		return
	}

	if err := ctx.MakeCurrent(); err != nil {
		m.logger.Warn("failed to bind render context", "output", m.handle.ID(), "error", err)
		m.handle.Repaint(damage)
		return
	}
	ctx.SetViewport(m.handle.Geometry())

	m.renderer(ctx)
	m.bus.Emit(signal.Frame, m.handle)
	if err := ctx.Present(); err != nil {
		m.logger.Warn("failed to present frame", "output", m.handle.ID(), "error", err)
	}
}

// PrePaint runs a snapshot of the output-level effect hooks.
func (m *Manager) PrePaint() {
	m.effects.Run()
}

// AddEffect registers hook on v, or on the output when v is nil.
func (m *Manager) AddEffect(hook *view.Effect, v *view.View) {
	if v != nil {
		v.AddEffect(hook)
		return
	}
	m.effects.Add(hook)
}

// RemoveEffect unregisters hook from v, or from the output when v is nil.
func (m *Manager) RemoveEffect(hook *view.Effect, v *view.View) {
	if v != nil {
		v.RemoveEffect(hook)
		return
	}
	m.effects.Remove(hook)
}

// EffectCount returns the number of output-level hooks.
func (m *Manager) EffectCount() int { return m.effects.Len() }

// Close releases the context. The next frame creates a fresh one.
func (m *Manager) Close() {
	if m.ctx != nil {
		m.ctx.Release()
		m.ctx = nil
	}
	m.dirty = true
}

// Resize drops the context after the output changed size or transform. The
// next frame binds a fresh one sized to the new geometry.
func (m *Manager) Resize() {
	m.Close()
}

// context returns the bound context, creating it first when dirty.
func (m *Manager) context() (platform.Context, error) {
	if !m.dirty {
		return m.ctx, nil
	}
	ctx, err := m.handle.PresentationContext(m.shaderPath)
	if err != nil {
		m.logger.Error("failed to create render context", "output", m.handle.ID(), "shader_src", m.shaderPath, "error", err)
		return nil, err
	}
	if m.ctx != nil {
		m.ctx.Release()
	}
	m.ctx = ctx
	m.dirty = false
	m.bus.Emit(signal.ReloadContext, nil)
	return ctx, nil
}

func (m *Manager) defaultRenderer(ctx platform.Context) {
	if m.scene == nil {
		return
	}
	if bg := m.scene.Background(); bg != nil {
		bg.Render(ctx)
	}
	m.scene.ForEachViewReverse(func(v *view.View) {
		if !v.Visible() {
			return
		}
		v.RunEffects()
		v.Render(ctx)
	})
}

func (m *Manager) scheduleIdleRepaint() {
	if m.sched == nil {
		m.handle.ScheduleRepaint()
		return
	}
	m.sched.AddIdle(m.handle.ScheduleRepaint)
}
