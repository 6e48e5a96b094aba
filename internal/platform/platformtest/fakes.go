// Package platformtest provides in-memory engine fakes for tests.
package platformtest

import (
	"fmt"
	"sync"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Journal records engine calls in order across fakes.
type Journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *Journal) add(format string, args ...any) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls.
func (j *Journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.calls))
	copy(out, j.calls)
	return out
}

// Reset clears the journal.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}

// Output is a fake platform.OutputHandle.
type Output struct {
	Journal *Journal

	OutputID   uint32
	OutputName string
	X, Y       int
	DevWidth   int
	DevHeight  int
	Width      int
	Height     int
	Xform      platform.Transform
	Gamma      int

	ContextErr error
	LastGamma  [3][]uint16
	Contexts   []*Context
	Repaints   int
	Scheduled  int
}

var _ platform.OutputHandle = (*Output)(nil)

// NewOutput returns a fake output with the given mode size.
func NewOutput(id uint32, width, height int) *Output {
	return &Output{
		Journal:    &Journal{},
		OutputID:   id,
		OutputName: fmt.Sprintf("FAKE-%d", id),
		DevWidth:   width,
		DevHeight:  height,
		Width:      width,
		Height:     height,
		Gamma:      256,
	}
}

func (o *Output) ID() uint32 { return o.OutputID }
func (o *Output) Name() string { return o.OutputName }

func (o *Output) Geometry() platform.Rect {
	return platform.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

func (o *Output) DeviceSize() (int, int) { return o.DevWidth, o.DevHeight }
func (o *Output) Transform() platform.Transform { return o.Xform }
func (o *Output) GammaSize() int { return o.Gamma }
func (o *Output) NotifyClients() { o.Journal.add("notify-clients") }
func (o *Output) Damage() { o.Journal.add("damage") }
func (o *Output) Repaint(damage platform.Region) { o.Repaints++; o.Journal.add("engine-repaint") }
func (o *Output) ScheduleRepaint() { o.Scheduled++; o.Journal.add("schedule-repaint") }

func (o *Output) Reconfigure(t platform.Transform, width, height int) error {
	o.Xform = t
	o.Width = width
	o.Height = height
	o.Journal.add("reconfigure %s %dx%d", t, width, height)
	return nil
}

func (o *Output) PresentationContext(shaderPath string) (platform.Context, error) {
	if o.ContextErr != nil {
		return nil, o.ContextErr
	}
	ctx := &Context{Journal: o.Journal}
	o.Contexts = append(o.Contexts, ctx)
	o.Journal.add("create-context %s", shaderPath)
	return ctx, nil
}

func (o *Output) SetGamma(r, g, b []uint16) error {
	o.LastGamma = [3][]uint16{r, g, b}
	o.Journal.add("set-gamma %d", len(r))
	return nil
}

// Context is a fake platform.Context.
type Context struct {
	Journal  *Journal
	Viewport platform.Rect
	Target   platform.Framebuffer
	Released bool
	Presents int
	nextFB   uint32
}

var _ platform.Context = (*Context)(nil)

func (c *Context) MakeCurrent() error {
	c.Journal.add("make-current")
	return nil
}

func (c *Context) SetViewport(r platform.Rect) {
	c.Viewport = r
	c.Journal.add("viewport %d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

func (c *Context) UseFramebuffer(fb platform.Framebuffer) {
	c.Target = fb
	if fb == nil {
		c.Journal.add("use-fb screen")
		return
	}
	c.Journal.add("use-fb %d", fb.ID())
}

func (c *Context) NewFramebuffer(width, height int) (platform.Framebuffer, error) {
	c.nextFB++
	c.Journal.add("new-fb %d %dx%d", c.nextFB, width, height)
	return &Framebuffer{Journal: c.Journal, FBID: c.nextFB, W: width, H: height}, nil
}

func (c *Context) DrawSurface(surfaceID uint32, dst platform.Rect) {
	c.Journal.add("draw %d %d,%d %dx%d", surfaceID, dst.X, dst.Y, dst.Width, dst.Height)
}

func (c *Context) Clear(r platform.Rect, col platform.Color) {
	c.Journal.add("clear %d,%d %dx%d %g %g %g", r.X, r.Y, r.Width, r.Height, col.R, col.G, col.B)
}

func (c *Context) Present() error {
	c.Presents++
	c.Journal.add("present")
	return nil
}

func (c *Context) Release() {
	c.Released = true
	c.Journal.add("release-context")
}

// Framebuffer is a fake platform.Framebuffer.
type Framebuffer struct {
	Journal  *Journal
	FBID     uint32
	W, H     int
	Released bool
}

func (f *Framebuffer) ID() uint32 { return f.FBID }
func (f *Framebuffer) Texture() uint32 { return f.FBID + 1000 }
func (f *Framebuffer) Size() (int, int) { return f.W, f.H }

func (f *Framebuffer) Release() {
	f.Released = true
	f.Journal.add("release-fb %d", f.FBID)
}

// Seat is a fake platform.Seat.
type Seat struct {
	Journal  *Journal
	Position platform.Point
	Focus    uint32
}

var _ platform.Seat = (*Seat)(nil)

func (s *Seat) Pointer() (platform.Point, error) { return s.Position, nil }

func (s *Seat) WarpPointer(p platform.Point) error {
	s.Position = p
	s.Journal.add("warp %d,%d", p.X, p.Y)
	return nil
}

func (s *Seat) SetKeyboardFocus(surfaceID uint32) error {
	s.Focus = surfaceID
	s.Journal.add("keyboard-focus %d", surfaceID)
	return nil
}

// Scheduler is a fake platform.Scheduler that queues idle callbacks until
// Drain is called.
type Scheduler struct {
	Pending []func()
}

func (s *Scheduler) AddIdle(fn func()) {
	s.Pending = append(s.Pending, fn)
}

// Drain runs the callbacks queued so far and returns how many ran.
func (s *Scheduler) Drain() int {
	pending := s.Pending
	s.Pending = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Surface is a fake client surface satisfying view.Surface.
type Surface struct {
	Journal   *Journal
	SurfaceID uint32
	Geometry  platform.Rect
	Activated bool
	Closed    bool
}

// NewSurface returns a surface that journals into j.
func NewSurface(j *Journal, id uint32) *Surface {
	return &Surface{Journal: j, SurfaceID: id}
}

func (s *Surface) ID() uint32 { return s.SurfaceID }

func (s *Surface) Configure(r platform.Rect) error {
	s.Geometry = r
	s.Journal.add("configure %d %d,%d %dx%d", s.SurfaceID, r.X, r.Y, r.Width, r.Height)
	return nil
}

func (s *Surface) SetActivated(on bool) error {
	s.Activated = on
	s.Journal.add("activated %d %v", s.SurfaceID, on)
	return nil
}

func (s *Surface) Raise() error {
	s.Journal.add("raise %d", s.SurfaceID)
	return nil
}

func (s *Surface) Close() error {
	s.Closed = true
	s.Journal.add("close %d", s.SurfaceID)
	return nil
}

// KeyBinder is a fake platform.KeyBinder and platform.ButtonBinder that lets
// tests fire bindings. Button sequences share the key table.
type KeyBinder struct {
	Bindings map[string][]*KeyBinding
}

// KeyBinding is a binding registered on a fake KeyBinder.
type KeyBinding struct {
	Callback func()
	Removed  bool
}

func (b *KeyBinding) Remove() { b.Removed = true }

func (k *KeyBinder) BindKey(sequence string, callback func()) (platform.Binding, error) {
	if k.Bindings == nil {
		k.Bindings = make(map[string][]*KeyBinding)
	}
	b := &KeyBinding{Callback: callback}
	k.Bindings[sequence] = append(k.Bindings[sequence], b)
	return b, nil
}

func (k *KeyBinder) BindButton(sequence string, callback func()) (platform.Binding, error) {
	return k.BindKey(sequence, callback)
}

// Press fires every live binding registered for sequence.
func (k *KeyBinder) Press(sequence string) int {
	fired := 0
	for _, b := range k.Bindings[sequence] {
		if b.Removed {
			continue
		}
		b.Callback()
		fired++
	}
	return fired
}
