package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Kind classifies a client window by its EWMH window type.
type Kind int

const (
	KindNormal Kind = iota
	KindDock
	KindDesktop
	// KindOther covers splash screens, notifications and the like, which are
	// never managed.
	KindOther
)

// WindowKind reads _NET_WM_WINDOW_TYPE. Windows without a type are normal.
func (c *Connection) WindowKind(windowID xproto.Window) Kind {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return KindNormal
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return KindNormal
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return KindDock
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return KindDesktop
		case "_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return KindOther
		}
	}
	if len(types) == 0 {
		return KindNormal
	}
	return KindOther
}

// ListClientWindows returns the viewable, non override-redirect children of
// the root window in stacking order, bottom first.
func (c *Connection) ListClientWindows() ([]xproto.Window, error) {
	xc := c.XUtil.Conn()
	tree, err := xproto.QueryTree(xc, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}

	var out []xproto.Window
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(xc, win).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		out = append(out, win)
	}
	return out, nil
}

// ListSurfaces returns the ids of every live client window.
func (c *Connection) ListSurfaces() ([]uint32, error) {
	wins, err := c.ListClientWindows()
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, len(wins))
	for i, w := range wins {
		ids[i] = uint32(w)
	}
	return ids, nil
}

// WindowGeometry returns the window geometry in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (platform.Rect, error) {
	geom, err := xwindow.RawGeometry(c.XUtil, xproto.Drawable(windowID))
	if err != nil {
		return platform.Rect{}, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return platform.Rect{}, err
	}
	return platform.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  geom.Width(),
		Height: geom.Height(),
	}, nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore geometry requests; not every client supports
	// the state change, so failures are ignored.
	_ = c.unmaximizeWindow(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
	return nil
}

// Surface is a top-level client window.
type Surface struct {
	conn *Connection
	win  xproto.Window
}

func NewSurface(conn *Connection, win xproto.Window) *Surface {
	return &Surface{conn: conn, win: win}
}

func (s *Surface) ID() uint32 { return uint32(s.win) }

func (s *Surface) Configure(r platform.Rect) error {
	return s.conn.MoveResizeWindow(s.win, r.X, r.Y, r.Width, r.Height)
}

// SetActivated publishes the window as _NET_ACTIVE_WINDOW, or clears the
// property when this window loses activation.
func (s *Surface) SetActivated(on bool) error {
	if on {
		return ewmh.ActiveWindowSet(s.conn.XUtil, s.win)
	}
	active, err := ewmh.ActiveWindowGet(s.conn.XUtil)
	if err != nil || active != s.win {
		return nil
	}
	return ewmh.ActiveWindowSet(s.conn.XUtil, 0)
}

func (s *Surface) Raise() error {
	return xproto.ConfigureWindowChecked(s.conn.XUtil.Conn(), s.win,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
}

// Close requests graceful window close via WM_DELETE_WINDOW, killing the
// client when it does not take part in the protocol.
func (s *Surface) Close() error {
	protocols, err := icccm.WmProtocolsGet(s.conn.XUtil, s.win)
	if err != nil || !contains(protocols, "WM_DELETE_WINDOW") {
		return xproto.KillClientChecked(s.conn.XUtil.Conn(), uint32(s.win)).Check()
	}

	deleteAtom, err := s.conn.internAtom("WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	protocolsAtom, err := s.conn.internAtom("WM_PROTOCOLS")
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: s.win,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		s.conn.XUtil.Conn(),
		false,
		s.win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
