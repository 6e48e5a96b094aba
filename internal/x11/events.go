package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Client is a newly mapped top-level window.
type Client struct {
	Surface  *Surface
	Geometry platform.Rect
	Kind     Kind
}

// ClientHandlers receive the client window lifecycle. They run on the
// goroutine dispatching X events.
type ClientHandlers struct {
	Mapped func(Client)
	// Gone is called once on unmap or destroy.
	Gone func(id uint32)
}

// WatchClients listens for map, unmap and destroy notifications on the root
// window. Windows that are already mapped are reported first.
func (c *Connection) WatchClients(h ClientHandlers, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	root := xwindow.New(c.XUtil, c.Root)
	if err := root.Listen(xproto.EventMaskSubstructureNotify); err != nil {
		return fmt.Errorf("listen on root window: %w", err)
	}

	existing, err := c.ListClientWindows()
	if err != nil {
		logger.Warn("failed to list existing windows", "error", err)
	}
	for _, win := range existing {
		c.reportMapped(win, h, logger)
	}

	xevent.MapNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if ev.OverrideRedirect {
			return
		}
		c.reportMapped(ev.Window, h, logger)
	}).Connect(c.XUtil, c.Root)

	xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if h.Gone != nil {
			h.Gone(uint32(ev.Window))
		}
	}).Connect(c.XUtil, c.Root)

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if h.Gone != nil {
			h.Gone(uint32(ev.Window))
		}
	}).Connect(c.XUtil, c.Root)

	return nil
}

func (c *Connection) reportMapped(win xproto.Window, h ClientHandlers, logger *slog.Logger) {
	kind := c.WindowKind(win)
	if kind == KindOther || h.Mapped == nil {
		return
	}
	geom, err := c.WindowGeometry(win)
	if err != nil {
		logger.Debug("failed to read window geometry", "window", uint32(win), "error", err)
		return
	}
	h.Mapped(Client{Surface: NewSurface(c, win), Geometry: geom, Kind: kind})
}
