// Package builtin holds the plugins every output loads before any dynamic
// module.
package builtin

import (
	"errors"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/plugin"
)

// Factories returns the built-in plugin factories in load order.
func Factories() []plugin.Factory {
	return []plugin.Factory{
		func() plugin.Plugin { return &Focus{} },
		func() plugin.Plugin { return &Close{} },
		func() plugin.Plugin { return &Exit{} },
		func() plugin.Plugin { return &Tile{} },
		func() plugin.Plugin { return &Rotate{} },
		func() plugin.Plugin { return &Switch{} },
	}
}

// bindKey binds the section's key option, falling back to def. A disabled
// ("none") key binds nothing.
func bindKey(h *plugin.Handle, cfg *config.Config, section, option, def string, cb func()) (func(), error) {
	key := cfg.Section(section).Key(option, config.ParseKey(def))
	if key.IsZero() {
		return func() {}, nil
	}
	b, err := h.AddKey(key.String(), cb)
	if err != nil {
		return nil, err
	}
	return b.Remove, nil
}

// bindButton is bindKey for pointer buttons. Outputs without a button
// binder skip the binding.
func bindButton(h *plugin.Handle, cfg *config.Config, section, option string, def config.Button, cb func()) (func(), error) {
	button := cfg.Section(section).Button(option, def)
	if button.IsZero() {
		return func() {}, nil
	}
	b, err := h.AddButton(button.String(), cb)
	if errors.Is(err, output.ErrNoButtonBinder) {
		h.Logger.Debug("button binding skipped", "button", button.String())
		return func() {}, nil
	}
	if err != nil {
		return nil, err
	}
	return b.Remove, nil
}

// withGrab runs fn only if the plugin's grab can be activated, releasing it
// afterwards.
func withGrab(h *plugin.Handle, fn func()) bool {
	if !h.Output.ActivatePlugin(h.Grab) {
		return false
	}
	defer h.Output.DeactivatePlugin(h.Grab)
	fn()
	return true
}
