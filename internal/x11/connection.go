// Package x11 implements the engine interfaces on top of an X server: RandR
// CRTCs as outputs, client windows as surfaces, xgbutil key bindings and the
// xevent loop as the dispatch source.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/tilewm/internal/eventloop"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// hasComposite is set when the Composite extension is available for
	// presentation contexts.
	hasComposite bool
}

// NewConnection connects to display (empty means $DISPLAY) and initializes
// the extensions the daemon needs.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)
	configureIgnoreMods(xu)

	return &Connection{
		XUtil:        xu,
		Root:         xu.RootWin(),
		hasComposite: composite.Init(xu.Conn()) == nil,
	}, nil
}

// MainPing starts the xevent loop in its own goroutine and hands its dispatch
// handshake to the event loop.
func (c *Connection) MainPing() eventloop.Pinger {
	before, after, quit := xevent.MainPing(c.XUtil)
	return eventloop.Pinger{Before: before, After: after, Quit: quit}
}

// Quit stops the xevent loop started by MainPing.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// internAtom returns the atom for name, creating it if needed.
func (c *Connection) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}
