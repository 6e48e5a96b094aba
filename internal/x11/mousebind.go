package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/tilewm/internal/platform"
)

// ButtonBinder grabs pointer buttons such as "Mod4-1" on the root window.
// Grabs are asynchronous so the pointer is never frozen.
type ButtonBinder struct {
	xu       *xgbutil.XUtil
	root     xproto.Window
	bindings bindingTable
}

var _ platform.ButtonBinder = (*ButtonBinder)(nil)

func NewButtonBinder(conn *Connection) *ButtonBinder {
	mousebind.Initialize(conn.XUtil)
	return &ButtonBinder{
		xu:       conn.XUtil,
		root:     conn.Root,
		bindings: make(bindingTable),
	}
}

func (m *ButtonBinder) BindButton(sequence string, callback func()) (platform.Binding, error) {
	if !m.bindings.grabbed(sequence) {
		err := mousebind.ButtonPressFun(func(*xgbutil.XUtil, xevent.ButtonPressEvent) {
			m.bindings.dispatch(sequence)
		}).Connect(m.xu, m.root, sequence, false, true)
		if err != nil {
			return nil, fmt.Errorf("bind button %q: %w", sequence, err)
		}
	}
	return m.bindings.add(sequence, callback), nil
}
