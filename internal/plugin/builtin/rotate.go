package builtin

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/plugin"
)

// Rotate turns the output a quarter turn at a time.
type Rotate struct {
	h      *plugin.Handle
	unbind []func()
}

func (r *Rotate) Name() string { return "rotate" }

func (r *Rotate) Init(h *plugin.Handle, cfg *config.Config) error {
	r.h = h
	h.Grab.AddCompat("focus", "close", "exit", "tile")

	for _, b := range []struct {
		option, def string
		turns       int
	}{
		{"rotate_left", "<super> <alt> KEY_LEFT", -1},
		{"rotate_right", "<super> <alt> KEY_RIGHT", 1},
	} {
		turns := b.turns
		unbind, err := bindKey(h, cfg, "rotate", b.option, b.def, func() { r.Turn(turns) })
		if err != nil {
			return fmt.Errorf("bind %s key: %w", b.option, err)
		}
		r.unbind = append(r.unbind, unbind)
	}
	return nil
}

func (r *Rotate) Fini() {
	for _, unbind := range r.unbind {
		unbind()
	}
	r.unbind = nil
}

// Turn applies n clockwise quarter turns. Negative n turns the other way.
func (r *Rotate) Turn(n int) bool {
	next := r.h.Output.Transform().Rotate(n)
	var err error
	applied := withGrab(r.h, func() {
		err = r.h.Output.SetTransform(next)
	})
	if err != nil {
		r.h.Logger.Warn("failed to rotate output", "transform", next.String(), "error", err)
		return false
	}
	return applied
}
