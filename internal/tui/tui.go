// Package tui is an interactive dashboard for a running tilewm daemon.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
)

// Daemon is the subset of the IPC client the dashboard uses.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	FocusOutput(output uint32) error
	Run(command string) error
}

// TUI runs the dashboard program.
type TUI struct {
	cfg    *config.Config
	daemon Daemon
}

// New creates a dashboard for cfg talking to daemon. A nil daemon uses the
// default socket.
func New(cfg *config.Config, daemon Daemon) *TUI {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if daemon == nil {
		daemon = ipc.NewClient()
	}
	return &TUI{cfg: cfg, daemon: daemon}
}

// Run blocks until the user quits.
func (t *TUI) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	p := tea.NewProgram(newModel(t.cfg, t.daemon), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
