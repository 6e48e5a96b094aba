// Package workspace implements per-output view stacking on a grid of
// workspaces, plus the shell surfaces (background, panels) and the work area
// they reserve.
package workspace

import (
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/view"
)

// Manager tracks the stacking order of one output's views. View geometry is
// in global coordinates; the current workspace covers the output geometry and
// the others sit at whole-output offsets from it.
type Manager struct {
	geometry func() platform.Rect
	columns  int
	rows     int
	current  platform.WorkspaceCoord

	stack      []*view.View // top to bottom
	panels     []*view.View
	background *view.View
	reserved   [4]int // indexed by platform.PanelSide
}

// New creates a manager for a columns x rows grid. geometry reports the
// output's current geometry.
func New(geometry func() platform.Rect, columns, rows int) *Manager {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Manager{geometry: geometry, columns: columns, rows: rows}
}

// BringToFront moves v to the top of the stack, inserting it if needed.
// Shell surfaces keep their own layer.
func (m *Manager) BringToFront(v *view.View) {
	if v == nil || v == m.background || indexOf(m.panels, v) >= 0 {
		return
	}
	m.stack = remove(m.stack, v)
	m.stack = append([]*view.View{v}, m.stack...)
}

// ViewRemoved forgets v in every layer.
func (m *Manager) ViewRemoved(v *view.View) {
	m.stack = remove(m.stack, v)
	m.panels = remove(m.panels, v)
	if m.background == v {
		m.background = nil
	}
}

// Contains reports whether v is tracked in any layer.
func (m *Manager) Contains(v *view.View) bool {
	return indexOf(m.stack, v) >= 0 || indexOf(m.panels, v) >= 0 || (v != nil && m.background == v)
}

// ViewVisibleOn reports whether v overlaps workspace ws.
func (m *Manager) ViewVisibleOn(v *view.View, ws platform.WorkspaceCoord) bool {
	return v.Geometry.Intersects(m.workspaceRect(ws))
}

// ForEachView walks panels then stacked views, top to bottom.
func (m *Manager) ForEachView(fn func(*view.View)) {
	for _, v := range snapshot(m.panels) {
		fn(v)
	}
	for _, v := range snapshot(m.stack) {
		fn(v)
	}
}

// ForEachViewReverse walks stacked views then panels, bottom to top.
func (m *Manager) ForEachViewReverse(fn func(*view.View)) {
	stack := snapshot(m.stack)
	for i := len(stack) - 1; i >= 0; i-- {
		fn(stack[i])
	}
	panels := snapshot(m.panels)
	for i := len(panels) - 1; i >= 0; i-- {
		fn(panels[i])
	}
}

// ViewsOnWorkspace lists the toplevel views visible on ws, top to bottom.
func (m *Manager) ViewsOnWorkspace(ws platform.WorkspaceCoord) []*view.View {
	var out []*view.View
	for _, v := range m.stack {
		if m.ViewVisibleOn(v, ws) {
			out = append(out, v)
		}
	}
	return out
}

// RenderableViews lists what a capture of ws draws, top to bottom: the
// toplevels on ws followed by the background. Panels are left out.
func (m *Manager) RenderableViews(ws platform.WorkspaceCoord) []*view.View {
	out := m.ViewsOnWorkspace(ws)
	if m.background != nil {
		out = append(out, m.background)
	}
	return out
}

// SetWorkspace switches to ws, shifting stacked views so ws covers the
// output. Out-of-grid coordinates are ignored.
func (m *Manager) SetWorkspace(ws platform.WorkspaceCoord) {
	if ws.X < 0 || ws.Y < 0 || ws.X >= m.columns || ws.Y >= m.rows || ws == m.current {
		return
	}
	g := m.geometry()
	dx := (m.current.X - ws.X) * g.Width
	dy := (m.current.Y - ws.Y) * g.Height
	for _, v := range m.stack {
		_ = v.Move(v.Geometry.X+dx, v.Geometry.Y+dy)
	}
	m.current = ws
}

func (m *Manager) CurrentWorkspace() platform.WorkspaceCoord { return m.current }

func (m *Manager) GridSize() (columns, rows int) { return m.columns, m.rows }

func (m *Manager) Background() *view.View { return m.background }

// Panels returns the panel views in insertion order.
func (m *Manager) Panels() []*view.View { return snapshot(m.panels) }

// AddBackground makes v the background and places it at x, y.
func (m *Manager) AddBackground(v *view.View, x, y int) {
	m.stack = remove(m.stack, v)
	m.panels = remove(m.panels, v)
	m.background = v
	_ = v.Move(x, y)
}

// AddPanel moves v into the panel layer.
func (m *Manager) AddPanel(v *view.View) {
	m.stack = remove(m.stack, v)
	if m.background == v {
		m.background = nil
	}
	if indexOf(m.panels, v) < 0 {
		m.panels = append(m.panels, v)
	}
}

// ConfigurePanel places a panel. Views that are not panels are left alone.
func (m *Manager) ConfigurePanel(v *view.View, x, y int) {
	if indexOf(m.panels, v) < 0 {
		return
	}
	_ = v.Move(x, y)
}

// ReserveWorkarea keeps size pixels free along side: height for top and
// bottom, width for left and right.
func (m *Manager) ReserveWorkarea(side platform.PanelSide, width, height int) {
	switch side {
	case platform.PanelTop, platform.PanelBottom:
		m.reserved[side] = height
	case platform.PanelLeft, platform.PanelRight:
		m.reserved[side] = width
	}
}

// Workarea is the output geometry minus the reserved edges.
func (m *Manager) Workarea() platform.Rect {
	g := m.geometry()
	top, bottom := m.reserved[platform.PanelTop], m.reserved[platform.PanelBottom]
	left, right := m.reserved[platform.PanelLeft], m.reserved[platform.PanelRight]
	return platform.Rect{
		X:      g.X + left,
		Y:      g.Y + top,
		Width:  max(g.Width-left-right, 0),
		Height: max(g.Height-top-bottom, 0),
	}
}

func (m *Manager) workspaceRect(ws platform.WorkspaceCoord) platform.Rect {
	g := m.geometry()
	return g.Translate((ws.X-m.current.X)*g.Width, (ws.Y-m.current.Y)*g.Height)
}

func indexOf(list []*view.View, v *view.View) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func remove(list []*view.View, v *view.View) []*view.View {
	i := indexOf(list, v)
	if i < 0 {
		return list
	}
	return append(list[:i:i], list[i+1:]...)
}

func snapshot(list []*view.View) []*view.View {
	out := make([]*view.View, len(list))
	copy(out, list)
	return out
}
