package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/view"
)

var (
	// ErrInvalidTarget is returned for an unknown output or untracked surface.
	ErrInvalidTarget = errors.New("invalid output or surface")
	// ErrGammaSize is returned when a gamma ramp does not match the output.
	ErrGammaSize = errors.New("gamma ramp size mismatch")
)

// Shell serves requests from desktop shell clients (backgrounds, panels).
// Coordinates are relative to the output origin.
type Shell struct {
	core   *Context
	logger *slog.Logger
}

// Shell returns the shell protocol endpoint for c.
func (c *Context) Shell() *Shell {
	return &Shell{core: c, logger: c.opts.Logger.With("component", "shell")}
}

func (s *Shell) resolve(outputID, surfaceID uint32) (*output.Output, *view.View, error) {
	o := s.core.Output(outputID)
	v := s.core.FindView(surfaceID)
	if o == nil || v == nil {
		s.logger.Warn("shell request with invalid output or surface", "output", outputID, "surface", surfaceID)
		return nil, nil, fmt.Errorf("output %d surface %d: %w", outputID, surfaceID, ErrInvalidTarget)
	}
	return o, v, nil
}

// AddBackground makes the surface the output's background at x, y.
func (s *Shell) AddBackground(outputID, surfaceID uint32, x, y int) error {
	o, v, err := s.resolve(outputID, surfaceID)
	if err != nil {
		return err
	}
	s.adopt(o, v)
	g := o.FullGeometry()
	o.Workspace().AddBackground(v, g.X+x, g.Y+y)
	o.Handle().Damage()
	return nil
}

// AddPanel moves the surface into the output's panel layer.
func (s *Shell) AddPanel(outputID, surfaceID uint32) error {
	o, v, err := s.resolve(outputID, surfaceID)
	if err != nil {
		return err
	}
	s.adopt(o, v)
	o.Workspace().AddPanel(v)
	o.Handle().Damage()
	return nil
}

// ConfigurePanel positions a panel on its output.
func (s *Shell) ConfigurePanel(outputID, surfaceID uint32, x, y int) error {
	o, v, err := s.resolve(outputID, surfaceID)
	if err != nil {
		return err
	}
	g := o.FullGeometry()
	o.Workspace().ConfigurePanel(v, g.X+x, g.Y+y)
	o.Handle().Damage()
	return nil
}

// ReserveWorkarea keeps an edge of the output free of tiled views.
func (s *Shell) ReserveWorkarea(outputID uint32, side platform.PanelSide, width, height int) error {
	o := s.core.Output(outputID)
	if o == nil {
		s.logger.Warn("workarea request for unknown output", "output", outputID)
		return fmt.Errorf("output %d: %w", outputID, ErrInvalidTarget)
	}
	o.Workspace().ReserveWorkarea(side, width, height)
	s.logger.Debug("workarea reserved", "output", outputID, "side", side.String(), "width", width, "height", height)
	return nil
}

// SetColorGamma loads a gamma ramp. Every channel must match the output's
// gamma size.
func (s *Shell) SetColorGamma(outputID uint32, r, g, b []uint16) error {
	o := s.core.Output(outputID)
	if o == nil {
		s.logger.Warn("gamma request for unknown output", "output", outputID)
		return fmt.Errorf("output %d: %w", outputID, ErrInvalidTarget)
	}
	size := o.Handle().GammaSize()
	if size == 0 || len(r) != size || len(g) != size || len(b) != size {
		s.logger.Warn("gamma ramp size does not match output",
			"output", outputID, "size", size, "red", len(r), "green", len(g), "blue", len(b))
		return fmt.Errorf("output %d expects %d entries: %w", outputID, size, ErrGammaSize)
	}
	if err := o.Handle().SetGamma(r, g, b); err != nil {
		return fmt.Errorf("set gamma on output %d: %w", outputID, err)
	}
	return nil
}

// adopt moves a shell surface onto o when the client created it elsewhere.
// Shell surfaces never keep the activated state.
func (s *Shell) adopt(o *output.Output, v *view.View) {
	if from := ownerOf(v); from != o {
		if from != nil {
			from.DetachView(v)
		}
		v.Output = o
	}
	if o.ActiveView() == v {
		o.SetActiveView(nil)
	}
}
