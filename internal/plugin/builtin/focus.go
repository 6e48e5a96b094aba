package builtin

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/view"
)

// Focus gives newly attached views the keyboard and cycles focus between the
// views of the current workspace.
type Focus struct {
	h       *plugin.Handle
	token   signal.Token
	unbind  func()
	unclick func()
}

func (f *Focus) Name() string { return "focus" }

func (f *Focus) Init(h *plugin.Handle, cfg *config.Config) error {
	f.h = h
	h.Grab.CompatAll = true

	unbind, err := bindKey(h, cfg, "focus", "cycle", "<alt> KEY_TAB", f.cycle)
	if err != nil {
		return fmt.Errorf("bind cycle key: %w", err)
	}
	f.unbind = unbind

	unclick, err := bindButton(h, cfg, "focus", "raise_button",
		config.Button{Mods: []string{"Mod4"}, Button: 1}, f.raiseUnderPointer)
	if err != nil {
		return fmt.Errorf("bind raise button: %w", err)
	}
	f.unclick = unclick
	f.token = h.Output.Bus().Subscribe(signal.AttachView, f.onAttach)
	return nil
}

func (f *Focus) Fini() {
	f.h.Output.Bus().Unsubscribe(f.token)
	if f.unbind != nil {
		f.unbind()
	}
	if f.unclick != nil {
		f.unclick()
	}
}

func (f *Focus) onAttach(payload any) {
	sig, ok := payload.(output.ViewSignal)
	if !ok || sig.View == nil || !sig.View.Mapped {
		return
	}
	withGrab(f.h, func() {
		f.h.Output.FocusView(sig.View, f.h.Output.Seat())
	})
}

// cycle focuses the bottom-most mapped view, which brings it to the top.
func (f *Focus) cycle() {
	var next *view.View
	for _, v := range f.h.Output.WorkspaceViews() {
		if v.Mapped && !v.Destroyed {
			next = v
		}
	}
	if next == nil || next == f.h.Output.ActiveView() {
		return
	}
	withGrab(f.h, func() {
		f.h.Output.FocusView(next, f.h.Output.Seat())
	})
}

// raiseUnderPointer focuses the view under the pointer.
func (f *Focus) raiseUnderPointer() {
	seat := f.h.Output.Seat()
	if seat == nil {
		return
	}
	p, err := seat.Pointer()
	if err != nil {
		f.h.Logger.Debug("failed to query pointer", "error", err)
		return
	}
	v := f.h.Output.ViewAt(p.X, p.Y)
	if v == nil || v == f.h.Output.ActiveView() {
		return
	}
	withGrab(f.h, func() {
		f.h.Output.FocusView(v, seat)
	})
}
