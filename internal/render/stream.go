package render

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Stream continuously captures one workspace into an offscreen framebuffer.
type Stream struct {
	Workspace   platform.WorkspaceCoord
	Framebuffer platform.Framebuffer
	ScaleX      float64
	ScaleY      float64
	Running     bool
}

// StreamStart allocates the stream's framebuffer and renders a first frame
// into it. Starting a running stream is a no-op.
func (m *Manager) StreamStart(s *Stream) error {
	if s.Running {
		return nil
	}
	ctx, err := m.context()
	if err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	g := m.handle.Geometry()
	fb, err := ctx.NewFramebuffer(g.Width, g.Height)
	if err != nil {
		return fmt.Errorf("start stream: %w", err)
	}

	s.Framebuffer = fb
	s.Running = true
	m.streamsRunning++
	m.StreamUpdate(s, 1, 1)
	return nil
}

// StreamUpdate renders the stream's workspace at the given scale.
func (m *Manager) StreamUpdate(s *Stream, scaleX, scaleY float64) {
	if !s.Running || m.ctx == nil {
		return
	}
	s.ScaleX, s.ScaleY = scaleX, scaleY

	m.ctx.UseFramebuffer(s.Framebuffer)
	m.renderWorkspace(m.ctx, s.Workspace, scaleX, scaleY)
	m.ctx.UseFramebuffer(nil)
}

// StreamStop releases the stream's framebuffer.
func (m *Manager) StreamStop(s *Stream) {
	if !s.Running {
		return
	}
	s.Running = false
	if s.Framebuffer != nil {
		s.Framebuffer.Release()
		s.Framebuffer = nil
	}
	m.streamsRunning--
}

// StreamsRunning returns the number of started, unstopped streams.
func (m *Manager) StreamsRunning() int { return m.streamsRunning }

// TextureFromWorkspace renders ws once into a new framebuffer. The caller
// owns the returned framebuffer.
func (m *Manager) TextureFromWorkspace(ws platform.WorkspaceCoord) (platform.Framebuffer, error) {
	ctx, err := m.context()
	if err != nil {
		return nil, fmt.Errorf("capture workspace: %w", err)
	}
	g := m.handle.Geometry()
	fb, err := ctx.NewFramebuffer(g.Width, g.Height)
	if err != nil {
		return nil, fmt.Errorf("capture workspace: %w", err)
	}
	ctx.UseFramebuffer(fb)
	m.renderWorkspace(ctx, ws, 1, 1)
	ctx.UseFramebuffer(nil)
	return fb, nil
}

// renderWorkspace draws ws bottom to top in framebuffer-local coordinates.
func (m *Manager) renderWorkspace(ctx platform.Context, ws platform.WorkspaceCoord, scaleX, scaleY float64) {
	if m.scene == nil {
		return
	}
	g := m.handle.Geometry()
	cur := m.scene.CurrentWorkspace()
	dx := (ws.X - cur.X) * g.Width
	dy := (ws.Y - cur.Y) * g.Height

	views := m.scene.RenderableViews(ws)
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		if !v.Visible() {
			continue
		}
		r := v.Geometry
		v.RenderAt(ctx, platform.Rect{
			X:      int(float64(r.X-g.X-dx) * scaleX),
			Y:      int(float64(r.Y-g.Y-dy) * scaleY),
			Width:  int(float64(r.Width) * scaleX),
			Height: int(float64(r.Height) * scaleY),
		})
	}
}
