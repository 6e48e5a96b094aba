package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/tilewm/internal/platform"
)

var rotations = map[platform.Transform]uint16{
	platform.TransformNormal:     randr.RotationRotate0,
	platform.Transform90:         randr.RotationRotate90,
	platform.Transform180:        randr.RotationRotate180,
	platform.Transform270:        randr.RotationRotate270,
	platform.TransformFlipped:    randr.RotationRotate0 | randr.RotationReflectX,
	platform.TransformFlipped90:  randr.RotationRotate90 | randr.RotationReflectX,
	platform.TransformFlipped180: randr.RotationRotate180 | randr.RotationReflectX,
	platform.TransformFlipped270: randr.RotationRotate270 | randr.RotationReflectX,
}

// transformFromRotation maps a RandR rotation mask back to a transform.
func transformFromRotation(rotation uint16) platform.Transform {
	for t, r := range rotations {
		if r == rotation {
			return t
		}
	}
	return platform.TransformNormal
}

// Output is a RandR CRTC driven as a platform.OutputHandle.
type Output struct {
	conn      *Connection
	monitor   Monitor
	transform platform.Transform
	scheduler platform.Scheduler
	logger    *slog.Logger

	damaged bool
	pending bool
	onFrame func(platform.Region)
}

var _ platform.OutputHandle = (*Output)(nil)

// NewOutput wraps monitor. Repaints are scheduled on scheduler.
func NewOutput(conn *Connection, monitor Monitor, scheduler platform.Scheduler, logger *slog.Logger) *Output {
	if logger == nil {
		logger = slog.Default()
	}
	return &Output{
		conn:      conn,
		monitor:   monitor,
		transform: transformFromRotation(monitor.Rotation),
		scheduler: scheduler,
		logger:    logger.With("component", "x11-output", "crtc", uint32(monitor.Crtc)),
	}
}

// OnFrame sets the function ScheduleRepaint runs on the next loop turn.
func (o *Output) OnFrame(fn func(platform.Region)) { o.onFrame = fn }

func (o *Output) ID() uint32 { return uint32(o.monitor.Crtc) }

func (o *Output) Name() string { return o.monitor.Name }

func (o *Output) Geometry() platform.Rect {
	return platform.Rect{X: o.monitor.X, Y: o.monitor.Y, Width: o.monitor.Width, Height: o.monitor.Height}
}

func (o *Output) DeviceSize() (int, int) { return o.monitor.ModeWidth, o.monitor.ModeHeight }

func (o *Output) Transform() platform.Transform { return o.transform }

// Reconfigure rotates the CRTC. The mode is kept; width and height become
// the logical output size.
func (o *Output) Reconfigure(t platform.Transform, width, height int) error {
	rotation, ok := rotations[t]
	if !ok {
		return fmt.Errorf("unsupported transform %d", t)
	}
	xc := o.conn.XUtil.Conn()
	resources, err := randr.GetScreenResources(xc, o.conn.Root).Reply()
	if err != nil {
		return fmt.Errorf("failed to get screen resources: %w", err)
	}
	reply, err := randr.SetCrtcConfig(xc, o.monitor.Crtc, xproto.TimeCurrentTime, resources.ConfigTimestamp,
		int16(o.monitor.X), int16(o.monitor.Y), o.monitor.Mode, rotation, o.monitor.Outputs).Reply()
	if err != nil {
		return fmt.Errorf("set crtc config: %w", err)
	}
	if reply != nil && reply.Status != randr.SetConfigSuccess {
		return fmt.Errorf("set crtc config: status %d", reply.Status)
	}

	o.transform = t
	o.monitor.Rotation = rotation
	o.monitor.Width, o.monitor.Height = width, height
	o.logger.Info("output reconfigured", "transform", t.String(), "width", width, "height", height)
	return nil
}

// NotifyClients publishes the new root geometry through EWMH.
func (o *Output) NotifyClients() {
	geom, err := xproto.GetGeometry(o.conn.XUtil.Conn(), xproto.Drawable(o.conn.Root)).Reply()
	if err != nil {
		o.logger.Debug("failed to query root geometry", "error", err)
		return
	}
	dg := &ewmh.DesktopGeometry{Width: int(geom.Width), Height: int(geom.Height)}
	if err := ewmh.DesktopGeometrySet(o.conn.XUtil, dg); err != nil {
		o.logger.Debug("failed to set desktop geometry", "error", err)
	}
}

func (o *Output) Damage() { o.damaged = true }

// ScheduleRepaint queues one frame for the next loop turn. Repeated calls
// before the frame runs are coalesced.
func (o *Output) ScheduleRepaint() {
	if o.pending || o.scheduler == nil {
		return
	}
	o.pending = true
	o.scheduler.AddIdle(func() {
		o.pending = false
		if o.onFrame == nil {
			return
		}
		var damage platform.Region
		if !o.damaged {
			damage = platform.Region{}
		}
		o.onFrame(damage)
	})
}

// Repaint is the engine's own compositing path. The X server draws client
// windows itself, so this only clears the damage.
func (o *Output) Repaint(platform.Region) {
	o.damaged = false
}

func (o *Output) PresentationContext(shaderPath string) (platform.Context, error) {
	if !o.conn.hasComposite {
		return nil, fmt.Errorf("output %s: composite extension unavailable", o.monitor.Name)
	}
	o.damaged = false
	return newPresentContext(o.conn, o.Geometry(), o.logger)
}

func (o *Output) GammaSize() int {
	reply, err := randr.GetCrtcGammaSize(o.conn.XUtil.Conn(), o.monitor.Crtc).Reply()
	if err != nil {
		o.logger.Debug("failed to query gamma size", "error", err)
		return 0
	}
	return int(reply.Size)
}

func (o *Output) SetGamma(r, g, b []uint16) error {
	err := randr.SetCrtcGammaChecked(o.conn.XUtil.Conn(), o.monitor.Crtc, uint16(len(r)), r, g, b).Check()
	if err != nil {
		return fmt.Errorf("set crtc gamma: %w", err)
	}
	return nil
}
