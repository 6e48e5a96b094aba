package builtin

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/plugin"
)

// Exit shuts the daemon down.
type Exit struct {
	unbind func()
}

func (e *Exit) Name() string { return "exit" }

func (e *Exit) Init(h *plugin.Handle, cfg *config.Config) error {
	h.Grab.CompatAll = true
	unbind, err := bindKey(h, cfg, "exit", "activate", "<ctrl> <alt> KEY_BACKSPACE", func() {
		h.Logger.Info("exit requested")
		h.Quit()
	})
	if err != nil {
		return fmt.Errorf("bind exit key: %w", err)
	}
	e.unbind = unbind
	return nil
}

func (e *Exit) Fini() {
	if e.unbind != nil {
		e.unbind()
	}
}
