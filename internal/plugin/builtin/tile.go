package builtin

import (
	"fmt"
	"math"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/output"
	"github.com/1broseidon/tilewm/internal/plugin"
	"github.com/1broseidon/tilewm/internal/signal"
	"github.com/1broseidon/tilewm/internal/tiling"
	"github.com/1broseidon/tilewm/internal/view"
)

// Tile lays the current workspace out whenever its view set or the output
// size changes.
type Tile struct {
	h       *plugin.Handle
	layout  tiling.Layout
	enabled bool
	tokens  []signal.Token
	unbind  func()
}

func (t *Tile) Name() string { return "tile" }

func (t *Tile) Init(h *plugin.Handle, cfg *config.Config) error {
	t.h = h
	section := cfg.Section("tile")
	mode, err := tiling.ParseMode(section.String("mode", string(tiling.ModeGrid)))
	if err != nil {
		return err
	}
	t.layout = tiling.Layout{
		Mode:            mode,
		Gap:             section.Int("gap", 0),
		MasterPercent:   int(math.Round(section.Double("master_ratio", 0.5) * 100)),
		FlexibleLastRow: section.Int("flexible_last_row", 1) != 0,
	}
	t.enabled = section.Int("enabled", 1) != 0
	h.Grab.AddCompat("focus", "close", "exit", "rotate")

	unbind, err := bindKey(h, cfg, "tile", "toggle", "<super> KEY_T", t.toggle)
	if err != nil {
		return fmt.Errorf("bind toggle key: %w", err)
	}
	t.unbind = unbind

	bus := h.Output.Bus()
	t.tokens = []signal.Token{
		bus.Subscribe(signal.AttachView, func(any) { t.Arrange(nil) }),
		bus.Subscribe(signal.DestroyView, func(p any) {
			if sig, ok := p.(output.ViewSignal); ok {
				t.Arrange(sig.View)
			}
		}),
		bus.Subscribe(signal.OutputResized, func(any) { t.Arrange(nil) }),
	}
	return nil
}

func (t *Tile) Fini() {
	for _, tok := range t.tokens {
		t.h.Output.Bus().Unsubscribe(tok)
	}
	t.tokens = nil
	if t.unbind != nil {
		t.unbind()
	}
}

func (t *Tile) toggle() {
	t.enabled = !t.enabled
	t.h.Logger.Info("tiling toggled", "enabled", t.enabled)
	if t.enabled {
		t.Arrange(nil)
	}
}

// Arrange tiles the current workspace, leaving out departing. It reports
// whether a layout was applied.
func (t *Tile) Arrange(departing *view.View) bool {
	if !t.enabled {
		return false
	}
	views := t.tileable(departing)
	if len(views) == 0 {
		return false
	}
	positions, err := t.layout.Positions(len(views), t.h.Output.Workarea())
	if err != nil {
		t.h.Logger.Warn("layout failed", "views", len(views), "error", err)
		return false
	}

	applied := withGrab(t.h, func() {
		for i, v := range views {
			if err := v.SetGeometry(positions[i]); err != nil {
				t.h.Logger.Warn("failed to configure view", "view", v.ID(), "error", err)
			}
		}
	})
	if !applied {
		t.h.Logger.Debug("tiling skipped, another plugin holds the output")
	}
	return applied
}

// tileable returns the workspace's tileable views oldest first.
func (t *Tile) tileable(departing *view.View) []*view.View {
	stack := t.h.Output.WorkspaceViews()
	out := make([]*view.View, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		v := stack[i]
		if v == departing || !v.Mapped || v.Destroyed || v.Hidden || v.Fullscreen {
			continue
		}
		out = append(out, v)
	}
	return out
}
