package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tilewm/internal/platform"
)

var errContextReleased = errors.New("presentation context released")

// presentContext renders into a pixmap the size of the output and presents
// it on the composite overlay window. Client windows are copied with their
// inferiors; copies are unscaled.
type presentContext struct {
	conn     *Connection
	geometry platform.Rect
	logger   *slog.Logger

	overlay  xproto.Window
	backing  xproto.Pixmap
	gc       xproto.Gcontext
	viewport platform.Rect
	target   *framebuffer
	released bool
}

func newPresentContext(conn *Connection, geometry platform.Rect, logger *slog.Logger) (*presentContext, error) {
	xc := conn.XUtil.Conn()
	overlay, err := composite.GetOverlayWindow(xc, conn.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get overlay window: %w", err)
	}

	backing, err := newPixmap(conn, geometry.Width, geometry.Height)
	if err != nil {
		composite.ReleaseOverlayWindow(xc, conn.Root)
		return nil, err
	}

	gc, err := xproto.NewGcontextId(xc)
	if err != nil {
		xproto.FreePixmap(xc, backing)
		composite.ReleaseOverlayWindow(xc, conn.Root)
		return nil, fmt.Errorf("allocate gc id: %w", err)
	}
	err = xproto.CreateGCChecked(xc, gc, xproto.Drawable(backing),
		xproto.GcSubwindowMode, []uint32{xproto.SubwindowModeIncludeInferiors}).Check()
	if err != nil {
		xproto.FreePixmap(xc, backing)
		composite.ReleaseOverlayWindow(xc, conn.Root)
		return nil, fmt.Errorf("create gc: %w", err)
	}

	return &presentContext{
		conn:     conn,
		geometry: geometry,
		logger:   logger,
		overlay:  overlay.OverlayWin,
		backing:  backing,
		gc:       gc,
		viewport: geometry,
	}, nil
}

func newPixmap(conn *Connection, width, height int) (xproto.Pixmap, error) {
	xc := conn.XUtil.Conn()
	pix, err := xproto.NewPixmapId(xc)
	if err != nil {
		return 0, fmt.Errorf("allocate pixmap id: %w", err)
	}
	depth := conn.XUtil.Screen().RootDepth
	err = xproto.CreatePixmapChecked(xc, depth, pix, xproto.Drawable(conn.Root),
		uint16(max(width, 1)), uint16(max(height, 1))).Check()
	if err != nil {
		return 0, fmt.Errorf("create pixmap %dx%d: %w", width, height, err)
	}
	return pix, nil
}

func (c *presentContext) MakeCurrent() error {
	if c.released {
		return errContextReleased
	}
	return nil
}

func (c *presentContext) SetViewport(r platform.Rect) { c.viewport = r }

func (c *presentContext) UseFramebuffer(fb platform.Framebuffer) {
	if fb == nil {
		c.target = nil
		return
	}
	if f, ok := fb.(*framebuffer); ok {
		c.target = f
	}
}

func (c *presentContext) NewFramebuffer(width, height int) (platform.Framebuffer, error) {
	pix, err := newPixmap(c.conn, width, height)
	if err != nil {
		return nil, err
	}
	return &framebuffer{conn: c.conn, pixmap: pix, width: width, height: height}, nil
}

// drawable resolves where r lands. Screen draws are in global coordinates
// relative to the viewport; framebuffer draws are local.
func (c *presentContext) drawable(r platform.Rect) (xproto.Drawable, int16, int16) {
	if c.target != nil {
		return xproto.Drawable(c.target.pixmap), int16(r.X), int16(r.Y)
	}
	return xproto.Drawable(c.backing), int16(r.X - c.viewport.X), int16(r.Y - c.viewport.Y)
}

// DrawSurface copies a client window.
func (c *presentContext) DrawSurface(surfaceID uint32, dst platform.Rect) {
	target, x, y := c.drawable(dst)
	xproto.CopyArea(c.conn.XUtil.Conn(), xproto.Drawable(surfaceID), target, c.gc,
		0, 0, x, y, uint16(max(dst.Width, 0)), uint16(max(dst.Height, 0)))
}

// Clear assumes a 24-bit TrueColor visual.
func (c *presentContext) Clear(r platform.Rect, col platform.Color) {
	target, x, y := c.drawable(r)
	xc := c.conn.XUtil.Conn()
	xproto.ChangeGC(xc, c.gc, xproto.GcForeground, []uint32{pixel(col)})
	xproto.PolyFillRectangle(xc, target, c.gc, []xproto.Rectangle{{
		X: x, Y: y, Width: uint16(max(r.Width, 0)), Height: uint16(max(r.Height, 0)),
	}})
}

func pixel(col platform.Color) uint32 {
	channel := func(v float64) uint32 {
		return uint32(math.Round(min(max(v, 0), 1) * 255))
	}
	return channel(col.R)<<16 | channel(col.G)<<8 | channel(col.B)
}

func (c *presentContext) Present() error {
	if c.released {
		return errContextReleased
	}
	g := c.geometry
	return xproto.CopyAreaChecked(c.conn.XUtil.Conn(), xproto.Drawable(c.backing), xproto.Drawable(c.overlay), c.gc,
		0, 0, int16(g.X), int16(g.Y), uint16(g.Width), uint16(g.Height)).Check()
}

func (c *presentContext) Release() {
	if c.released {
		return
	}
	c.released = true
	xc := c.conn.XUtil.Conn()
	xproto.FreeGC(xc, c.gc)
	xproto.FreePixmap(xc, c.backing)
	composite.ReleaseOverlayWindow(xc, c.conn.Root)
	c.logger.Debug("presentation context released")
}

// framebuffer is an offscreen pixmap. Its texture id is the pixmap id.
type framebuffer struct {
	conn   *Connection
	pixmap xproto.Pixmap
	width  int
	height int
}

func (f *framebuffer) ID() uint32 { return uint32(f.pixmap) }

func (f *framebuffer) Texture() uint32 { return uint32(f.pixmap) }

func (f *framebuffer) Size() (int, int) { return f.width, f.height }

func (f *framebuffer) Release() {
	xproto.FreePixmap(f.conn.XUtil.Conn(), f.pixmap)
}
