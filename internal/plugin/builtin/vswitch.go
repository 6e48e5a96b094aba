package builtin

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/plugin"
)

// Switch moves between the cells of the workspace grid. The new workspace
// slides in over the configured background color while the plugin holds its
// grab.
type Switch struct {
	h          *plugin.Handle
	unbind     []func()
	duration   int
	background platform.Color

	sliding   bool
	dir       platform.Point
	remaining int
}

func (s *Switch) Name() string { return "vswitch" }

func (s *Switch) Init(h *plugin.Handle, cfg *config.Config) error {
	s.h = h
	section := cfg.Section("vswitch")
	s.duration = section.Duration("duration", 18)
	s.background = platform.Color(section.Color("background", config.Color{A: 1}))
	h.Grab.AddCompat("focus", "close", "exit")

	for _, b := range []struct {
		option, def string
		dir         platform.Point
	}{
		{"binding_left", "<super> <ctrl> KEY_LEFT", platform.Point{X: -1}},
		{"binding_right", "<super> <ctrl> KEY_RIGHT", platform.Point{X: 1}},
		{"binding_up", "<super> <ctrl> KEY_UP", platform.Point{Y: -1}},
		{"binding_down", "<super> <ctrl> KEY_DOWN", platform.Point{Y: 1}},
	} {
		dir := b.dir
		unbind, err := bindKey(h, cfg, "vswitch", b.option, b.def, func() { s.Move(dir.X, dir.Y) })
		if err != nil {
			return fmt.Errorf("bind %s key: %w", b.option, err)
		}
		s.unbind = append(s.unbind, unbind)
	}
	return nil
}

func (s *Switch) Fini() {
	s.finish()
	for _, unbind := range s.unbind {
		unbind()
	}
	s.unbind = nil
}

// Move switches to the workspace dx, dy cells away. Moves off the grid are
// ignored.
func (s *Switch) Move(dx, dy int) bool {
	out := s.h.Output
	cur := out.CurrentWorkspace()
	target := platform.WorkspaceCoord{X: cur.X + dx, Y: cur.Y + dy}
	cols, rows := out.WorkspaceGrid()
	if target.X < 0 || target.Y < 0 || target.X >= cols || target.Y >= rows {
		return false
	}

	s.finish()
	if !out.ActivatePlugin(s.h.Grab) {
		return false
	}
	out.SetWorkspace(target)
	for _, v := range out.WorkspaceViews() {
		if v.Mapped && !v.Destroyed {
			out.FocusView(v, out.Seat())
			break
		}
	}

	if s.duration <= 0 {
		out.DeactivatePlugin(s.h.Grab)
		return true
	}
	s.sliding = true
	s.dir = platform.Point{X: dx, Y: dy}
	s.remaining = s.duration
	r := out.Render()
	r.SetRenderer(s.frame)
	r.AutoRedraw(true)
	return true
}

// Sliding reports whether a transition is running.
func (s *Switch) Sliding() bool { return s.sliding }

// frame draws the current workspace offset towards where it came from. The
// offset shrinks to zero over the transition.
func (s *Switch) frame(ctx platform.Context) {
	s.remaining--
	full := s.h.Output.FullGeometry()
	ox := s.dir.X * full.Width * s.remaining / s.duration
	oy := s.dir.Y * full.Height * s.remaining / s.duration

	ctx.Clear(full, s.background)
	views := s.h.Output.WorkspaceViews()
	for i := len(views) - 1; i >= 0; i-- {
		if v := views[i]; v.Visible() {
			v.RenderAt(ctx, v.Geometry.Translate(ox, oy))
		}
	}
	if s.remaining <= 0 {
		s.finish()
	}
}

// finish ends a running transition and hands frames back to the default
// renderer.
func (s *Switch) finish() {
	if !s.sliding {
		return
	}
	s.sliding = false
	s.remaining = 0
	r := s.h.Output.Render()
	r.AutoRedraw(false)
	r.ResetRenderer()
	s.h.Output.DeactivatePlugin(s.h.Grab)
}
