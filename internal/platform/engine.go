package platform

// The interfaces in this file are implemented by the compositing engine that
// owns raw display surfaces, GPU context primitives and input devices. The
// window-management core only talks to the engine through them.

// OutputHandle is the engine's view of one physical or virtual display.
type OutputHandle interface {
	ID() uint32
	Name() string

	// Geometry is the current logical pixel geometry (transform applied).
	Geometry() Rect
	// DeviceSize is the untransformed mode size of the display.
	DeviceSize() (width, height int)
	Transform() Transform
	// Reconfigure applies a transform and resizes the backing render surface.
	Reconfigure(t Transform, width, height int) error
	// NotifyClients resends output geometry to every protocol client.
	NotifyClients()

	Damage()
	ScheduleRepaint()
	// Repaint hands a frame to the engine's own compositing path.
	Repaint(damage Region)
	// PresentationContext creates a rendering context bound to the output's
	// current presentation surface.
	PresentationContext(shaderPath string) (Context, error)

	GammaSize() int
	SetGamma(r, g, b []uint16) error
}

// Context is a rendering context owned by one output.
type Context interface {
	// MakeCurrent binds the context to the output's presentation surface.
	MakeCurrent() error
	SetViewport(r Rect)
	// UseFramebuffer redirects drawing to fb; nil restores the presentation surface.
	UseFramebuffer(fb Framebuffer)
	NewFramebuffer(width, height int) (Framebuffer, error)
	// DrawSurface composites one client surface into dst.
	DrawSurface(surfaceID uint32, dst Rect)
	// Clear fills r with c. Alpha is ignored by opaque targets.
	Clear(r Rect, c Color)
	Present() error
	Release()
}

// Framebuffer is an offscreen framebuffer+texture pair.
type Framebuffer interface {
	ID() uint32
	Texture() uint32
	Size() (width, height int)
	Release()
}

// Seat is the pointer/keyboard pair used for focus transfer.
type Seat interface {
	Pointer() (Point, error)
	WarpPointer(p Point) error
	// SetKeyboardFocus gives keyboard focus to a surface; 0 clears it.
	SetKeyboardFocus(surfaceID uint32) error
}

// Scheduler defers work to the next turn of the event loop.
type Scheduler interface {
	AddIdle(fn func())
}

// KeyBinder registers global key bindings.
type KeyBinder interface {
	BindKey(sequence string, callback func()) (Binding, error)
}

// ButtonBinder registers global pointer button bindings.
type ButtonBinder interface {
	BindButton(sequence string, callback func()) (Binding, error)
}

// Binding is a registered key or button binding.
type Binding interface {
	Remove()
}
