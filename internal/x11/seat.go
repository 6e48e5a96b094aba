package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Seat is the core pointer and keyboard of the X server.
type Seat struct {
	conn *Connection
}

var _ platform.Seat = (*Seat)(nil)

func NewSeat(conn *Connection) *Seat {
	return &Seat{conn: conn}
}

func (s *Seat) Pointer() (platform.Point, error) {
	pointer, err := xproto.QueryPointer(s.conn.XUtil.Conn(), s.conn.Root).Reply()
	if err != nil {
		return platform.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return platform.Point{X: int(pointer.RootX), Y: int(pointer.RootY)}, nil
}

func (s *Seat) WarpPointer(p platform.Point) error {
	return xproto.WarpPointerChecked(s.conn.XUtil.Conn(), 0, s.conn.Root,
		0, 0, 0, 0, int16(p.X), int16(p.Y)).Check()
}

// SetKeyboardFocus focuses a window. Zero returns focus to the window under
// the pointer.
func (s *Seat) SetKeyboardFocus(surfaceID uint32) error {
	focus := xproto.Window(surfaceID)
	if surfaceID == 0 {
		focus = xproto.InputFocusPointerRoot
	}
	return xproto.SetInputFocusChecked(s.conn.XUtil.Conn(), xproto.InputFocusPointerRoot,
		focus, xproto.TimeCurrentTime).Check()
}
