package builtin

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/plugin"
)

// Close asks the active view's client to close.
type Close struct {
	h      *plugin.Handle
	unbind func()
}

func (c *Close) Name() string { return "close" }

func (c *Close) Init(h *plugin.Handle, cfg *config.Config) error {
	c.h = h
	h.Grab.CompatAll = true
	unbind, err := bindKey(h, cfg, "close", "activate", "<super> KEY_Q", c.closeActive)
	if err != nil {
		return fmt.Errorf("bind close key: %w", err)
	}
	c.unbind = unbind
	return nil
}

func (c *Close) Fini() {
	if c.unbind != nil {
		c.unbind()
	}
}

func (c *Close) closeActive() {
	v := c.h.Output.ActiveView()
	if v == nil || v.Destroyed || v.Surface == nil {
		return
	}
	withGrab(c.h, func() {
		if err := v.Surface.Close(); err != nil {
			c.h.Logger.Warn("failed to close view", "view", v.ID(), "error", err)
		}
	})
}
