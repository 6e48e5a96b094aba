package output

import (
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/view"
)

//go:generate mockgen -destination=mock_workspace_test.go -package=output . WorkspaceManager

// WorkspaceManager owns the stacking order and workspace grid of one output.
type WorkspaceManager interface {
	BringToFront(v *view.View)
	ViewRemoved(v *view.View)
	ViewVisibleOn(v *view.View, ws platform.WorkspaceCoord) bool

	// ForEachView walks views top to bottom; ForEachViewReverse bottom to top.
	ForEachView(fn func(*view.View))
	ForEachViewReverse(fn func(*view.View))

	// ViewsOnWorkspace lists the toplevels visible on ws, top to bottom.
	ViewsOnWorkspace(ws platform.WorkspaceCoord) []*view.View
	// RenderableViews lists ViewsOnWorkspace plus the background, last.
	RenderableViews(ws platform.WorkspaceCoord) []*view.View

	SetWorkspace(ws platform.WorkspaceCoord)
	CurrentWorkspace() platform.WorkspaceCoord
	GridSize() (columns, rows int)

	Background() *view.View
	AddBackground(v *view.View, x, y int)
	AddPanel(v *view.View)
	ConfigurePanel(v *view.View, x, y int)
	ReserveWorkarea(side platform.PanelSide, width, height int)
	// Workarea is the output geometry minus space reserved by panels.
	Workarea() platform.Rect
}
